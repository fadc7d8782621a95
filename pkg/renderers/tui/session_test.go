package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/result"
	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/submit"
)

type stubDriver struct {
	mu           sync.Mutex
	inputs       []string
	passwords    []string
	confirm      []bool
	infoMessages []string
	prompts      []string
	inputPos     int
	passPos      int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.infoMessages, "\n")
}

type recordingSender struct {
	mu    sync.Mutex
	calls []submit.Payload
}

func (r *recordingSender) Send(_ context.Context, payload submit.Payload) submit.Result {
	r.mu.Lock()
	r.calls = append(r.calls, payload)
	r.mu.Unlock()
	return submit.Success("s1", 201, []byte(`{"id":42}`))
}

func newSession(t *testing.T, driver *stubDriver, sender submit.Sender) (*Session, *orchestrator.Orchestrator) {
	t.Helper()
	session := New(WithPromptDriver(driver))
	o, err := orchestrator.New(session, orchestrator.WithSender(sender))
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	t.Cleanup(func() { _ = o.Close() })
	return session, o
}

func TestRun_RepromptsInvalidAnswersAndSubmits(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Ana", "Ana Gomez",
			"ana@example.com",
			"17", "30",
			"1234567",
			"Calle 123",
			"Roma",
			"1000",
			"1234567",
		},
		passwords: []string{"abc12345", "abc12345"},
		confirm:   []bool{true, false},
	}
	sender := &recordingSender{}
	session, o := newSession(t, driver, sender)

	if err := session.Run(context.Background(), o); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sender.calls) != 1 {
		t.Fatalf("expected one submission, got %d", len(sender.calls))
	}
	want := map[string]string{
		rules.FieldFullName:        "Ana Gomez",
		rules.FieldEmail:           "ana@example.com",
		rules.FieldPassword:        "abc12345",
		rules.FieldConfirmPassword: "abc12345",
		rules.FieldAge:             "30",
		rules.FieldPhone:           "1234567",
		rules.FieldAddress:         "Calle 123",
		rules.FieldCity:            "Roma",
		rules.FieldPostalCode:      "1000",
		rules.FieldDNI:             "1234567",
	}
	if diff := cmp.Diff(want, sender.calls[0].Map()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	out := driver.Output()
	for _, expected := range []string{
		rules.MessageFullName,
		rules.MessageAge,
		"HOLA Ana Gomez",
		result.SuccessHeading,
		`"id": 42`,
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected output to contain %q\n%s", expected, out)
		}
	}

	modal, visible := session.State().Modal()
	if visible {
		t.Fatalf("modal should be dismissed after acknowledgement")
	}
	if modal.Heading != result.SuccessHeading {
		t.Fatalf("unexpected modal heading %q", modal.Heading)
	}
	if len(session.State().Errors()) != 0 {
		t.Fatalf("expected no pending errors, got %v", session.State().Errors())
	}
}

func TestRun_DeclineSubmitSendsNothing(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ana Gomez", "ana@example.com", "30", "1234567", "Calle 123", "Roma", "1000", "1234567"},
		passwords: []string{"abc12345", "abc12345"},
		confirm:   []bool{false, false},
	}
	sender := &recordingSender{}
	session, o := newSession(t, driver, sender)

	if err := session.Run(context.Background(), o); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sender.calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(sender.calls))
	}
	if driver.passPos != 2 {
		t.Fatalf("expected both password prompts, got %d", driver.passPos)
	}
}

func TestRun_PropagatesAbort(t *testing.T) {
	driver := &stubDriver{}
	session, o := newSession(t, driver, &recordingSender{})

	err := session.Run(context.Background(), o)
	if err == nil {
		t.Fatalf("expected error when driver runs out of answers")
	}
}

func TestSession_SurfaceOutput(t *testing.T) {
	driver := &stubDriver{}
	session := New(WithPromptDriver(driver), WithPrefill(map[string]string{rules.FieldCity: "Roma"}))

	session.SetTitleText("HOLA")
	session.SetTitleText("HOLA")
	session.SetErrorText(rules.FieldCity, "")
	session.Alert("atención")

	if session.Value(rules.FieldCity) != "Roma" {
		t.Fatalf("prefill not applied")
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected heading and alert only, got %q", driver.infoMessages)
	}
	if diff := cmp.Diff([]string{"atención"}, session.State().Alerts()); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("unexpected translation %v", got)
	}
}
