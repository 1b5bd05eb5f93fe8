package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps the inline markup hosts commonly put in help text
// (links, emphasis, lists) and strips everything else.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(trimmed))
}
