package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	modalPolicyOnce sync.Once
	modalPolicy     *bluemonday.Policy
)

func sanitizeModal(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(modalSanitizer().Sanitize(trimmed))
}

func modalSanitizer() *bluemonday.Policy {
	modalPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "h2", "p", "pre", "button")
		policy.AllowAttrs("id", "class").Globally()
		policy.AllowAttrs("hidden").OnElements("div")
		policy.AllowAttrs("type").OnElements("button")
		modalPolicy = policy
	})
	return modalPolicy
}
