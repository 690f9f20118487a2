// Package naming validates user-chosen workspace names.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const workspaceNameMaxLength = 255

// ValidateWorkspaceName checks that name can be used as a workspace name.
// Names appear as a path segment in workspace URLs (owner/name), so they
// must be non-blank, bounded and free of slashes and control characters.
func ValidateWorkspaceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("workspace name must not be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("workspace name is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(name); n > workspaceNameMaxLength {
		return fmt.Errorf("workspace name exceeds %d characters", workspaceNameMaxLength)
	}
	for _, r := range name {
		if r == '/' || unicode.IsControl(r) {
			return fmt.Errorf("invalid workspace name %q: contains %q", name, r)
		}
	}
	return nil
}
