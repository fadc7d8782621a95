package tui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/surface"
)

const (
	submitPrompt = "¿Enviar el formulario?"
	againPrompt  = "¿Corregir los datos y enviar de nuevo?"
)

// Session is a terminal rendition of the registration page. Inputs become
// prompts, inline errors and the heading are printed as they change and the
// result modal is drawn as a bordered box.
type Session struct {
	driver PromptDriver
	theme  Theme
	state  *surface.Memory

	mu  sync.Mutex
	ctx context.Context
}

var _ surface.Surface = (*Session)(nil)

// New constructs a session with the survey driver unless overridden.
func New(options ...Option) *Session {
	s := &Session{
		theme: DefaultTheme(),
		state: surface.NewMemory(nil),
		ctx:   context.Background(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// State exposes the values, errors, heading and modal captured so far.
func (s *Session) State() *surface.Memory {
	return s.state
}

func (s *Session) Value(id string) string {
	return s.state.Value(id)
}

// SetErrorText records the error and prints it when non-empty.
func (s *Session) SetErrorText(id, text string) {
	s.state.SetErrorText(id, text)
	if text == "" {
		return
	}
	s.info(s.theme.Error.Render(s.theme.ErrorPrefix + text))
}

// SetTitleText prints the heading when it changes.
func (s *Session) SetTitleText(text string) {
	if s.state.Title() == text {
		return
	}
	s.state.SetTitleText(text)
	s.info(s.theme.Title.Render(text))
}

func (s *Session) Alert(message string) {
	s.state.Alert(message)
	s.info(s.theme.Alert.Render(message))
}

// ShowModal draws the result box.
func (s *Session) ShowModal(m surface.Modal) {
	s.state.ShowModal(m)
	style := s.theme.FailureModal
	if m.Succeeded {
		style = s.theme.SuccessModal
	}
	body := strings.Join([]string{
		s.theme.Title.Render(m.Heading),
		m.Copy,
		"",
		m.Body,
	}, "\n")
	s.info(style.Render(body))
}

func (s *Session) HideModal() {
	s.state.HideModal()
}

func (s *Session) info(msg string) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	_ = s.driver.Info(ctx, msg)
}

func (s *Session) bind(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

// Run walks the form field by field until the user declines another attempt.
// Each prompt is a focus, each answer an input followed by a blur; invalid
// answers are asked again. The submission result is shown before the user is
// asked whether to start over.
func (s *Session) Run(ctx context.Context, o *orchestrator.Orchestrator) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if o == nil {
		return errors.New("tui: orchestrator is required")
	}
	if s.driver == nil {
		return ErrNoDriver
	}
	s.bind(ctx)
	o.Controller().Init()

	for {
		if err := s.collect(ctx, o); err != nil {
			return err
		}

		send, err := s.driver.Confirm(ctx, ConfirmConfig{Message: submitPrompt, Default: true})
		if err != nil {
			return err
		}
		if send {
			if err := s.submit(ctx, o); err != nil {
				return err
			}
		}

		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: againPrompt})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) collect(ctx context.Context, o *orchestrator.Orchestrator) error {
	for _, id := range o.Rules().IDs() {
		if err := s.promptField(ctx, o, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, o *orchestrator.Orchestrator, id string) error {
	meta := surface.Describe(id)
	for {
		if err := o.Handle(form.Event{Kind: form.EventFocus, Field: id}); err != nil {
			return err
		}

		cfg := InputConfig{
			Message: meta.Label,
			Default: s.state.Value(id),
			Help:    meta.Placeholder,
		}
		var (
			answer string
			err    error
		)
		if meta.Sensitive() {
			answer, err = s.driver.Password(ctx, cfg)
		} else {
			answer, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		s.state.SetValue(id, answer)
		if err := o.Handle(form.Event{Kind: form.EventInput, Field: id}); err != nil {
			return err
		}
		valid, err := o.Controller().Blur(id)
		if err != nil {
			return err
		}
		if valid {
			return nil
		}
	}
}

func (s *Session) submit(ctx context.Context, o *orchestrator.Orchestrator) error {
	pending, err := o.Submit(ctx)
	if err != nil {
		if errors.Is(err, orchestrator.ErrFormInvalid) {
			return nil
		}
		return err
	}
	if _, err := pending.Wait(ctx); err != nil {
		return err
	}
	if _, err := o.Click(ctx, surface.ModalCloseID); err != nil {
		return err
	}
	return nil
}
