package tui

import "github.com/charmbracelet/lipgloss"

// Theme captures the styles used when printing to the terminal.
type Theme struct {
	Title        lipgloss.Style
	Error        lipgloss.Style
	Alert        lipgloss.Style
	SuccessModal lipgloss.Style
	FailureModal lipgloss.Style
	ErrorPrefix  string
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return Theme{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Alert:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		SuccessModal: box.BorderForeground(lipgloss.Color("42")),
		FailureModal: box.BorderForeground(lipgloss.Color("196")),
		ErrorPrefix:  "✗ ",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme replaces the terminal styles.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithPrefill seeds input values shown as prompt defaults.
func WithPrefill(values map[string]string) Option {
	return func(s *Session) {
		for id, value := range values {
			s.state.SetValue(id, value)
		}
	}
}
