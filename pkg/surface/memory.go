package surface

import "sync"

// Memory is an in-process Surface. It keeps input values, error texts, the
// title, alerts and the modal in maps guarded by a mutex so submissions that
// complete on other goroutines can write to it safely.
type Memory struct {
	mu           sync.RWMutex
	values       map[string]string
	errors       map[string]string
	title        string
	alerts       []string
	modal        Modal
	modalVisible bool
	modalShown   int
}

var _ Surface = (*Memory)(nil)

// NewMemory seeds the surface with prefilled input values.
func NewMemory(prefill map[string]string) *Memory {
	values := make(map[string]string, len(prefill))
	for k, v := range prefill {
		values[k] = v
	}
	return &Memory{
		values: values,
		errors: make(map[string]string),
	}
}

// SetValue types a value into an input.
func (m *Memory) SetValue(id, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[id] = value
}

// Value implements ValueReader.
func (m *Memory) Value(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[id]
}

// Values returns a copy of every input value.
func (m *Memory) Values() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// SetErrorText implements ErrorWriter.
func (m *Memory) SetErrorText(id, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if text == "" {
		delete(m.errors, id)
		return
	}
	m.errors[id] = text
}

// ErrorText returns the error currently displayed for a field.
func (m *Memory) ErrorText(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[id]
}

// Errors returns a copy of every visible error keyed by field id.
func (m *Memory) Errors() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// SetTitleText implements TitleWriter.
func (m *Memory) SetTitleText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.title = text
}

// Title returns the current heading text.
func (m *Memory) Title() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.title
}

// Alert implements Notifier.
func (m *Memory) Alert(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, message)
}

// Alerts returns every notification shown so far.
func (m *Memory) Alerts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.alerts...)
}

// ShowModal implements ModalView.
func (m *Memory) ShowModal(modal Modal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = modal
	m.modalVisible = true
	m.modalShown++
}

// HideModal implements ModalView.
func (m *Memory) HideModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modalVisible = false
}

// Modal returns the last modal content and whether it is visible.
func (m *Memory) Modal() (Modal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modal, m.modalVisible
}

// ModalShownCount reports how many times the modal has been displayed.
func (m *Memory) ModalShownCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modalShown
}
