package platform

import (
	"net/url"
	"strings"
)

// Endpoints holds the API paths relative to the server URL. Placeholders in
// braces are substituted with path-escaped values.
type Endpoints struct {
	WorkspaceCollection string `yaml:"workspaceCollection,omitempty"`
	WorkspaceEntry      string `yaml:"workspaceEntry,omitempty"` // {workspace_id}
	WorkspaceMerge      string `yaml:"workspaceMerge,omitempty"` // {to_ws_id}
	Preferences         string `yaml:"preferences,omitempty"`    // {scope}
	Logout              string `yaml:"logout,omitempty"`
}

// DefaultEndpoints returns the paths served by the platform.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		WorkspaceCollection: "api/workspaces",
		WorkspaceEntry:      "api/workspace/{workspace_id}",
		WorkspaceMerge:      "api/workspace/{to_ws_id}/merge",
		Preferences:         "api/preferences/{scope}",
		Logout:              "logout",
	}
}

// WithDefaults fills empty paths from DefaultEndpoints.
func (e Endpoints) WithDefaults() Endpoints {
	d := DefaultEndpoints()
	if e.WorkspaceCollection == "" {
		e.WorkspaceCollection = d.WorkspaceCollection
	}
	if e.WorkspaceEntry == "" {
		e.WorkspaceEntry = d.WorkspaceEntry
	}
	if e.WorkspaceMerge == "" {
		e.WorkspaceMerge = d.WorkspaceMerge
	}
	if e.Preferences == "" {
		e.Preferences = d.Preferences
	}
	if e.Logout == "" {
		e.Logout = d.Logout
	}
	return e
}

// evaluate substitutes {key} placeholders in tmpl.
func evaluate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", url.PathEscape(v))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
