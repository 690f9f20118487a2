// Package ui holds terminal renditions of the platform's interactive panels.
package ui

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kompox/mashup/domain"
)

// PreferencesSource fetches a preferences document for a scope.
type PreferencesSource interface {
	Preferences(ctx context.Context, scope string) (map[string]any, error)
}

// PreferencesWindow prints platform preferences as YAML.
type PreferencesWindow struct {
	source PreferencesSource
	out    io.Writer
	scope  string
}

// NewPreferencesWindow returns a panel showing scope "platform" on out.
func NewPreferencesWindow(source PreferencesSource, out io.Writer) (*PreferencesWindow, error) {
	if source == nil {
		return nil, fmt.Errorf("preferences source is nil")
	}
	if out == nil {
		return nil, fmt.Errorf("preferences output is nil")
	}
	return &PreferencesWindow{source: source, out: out, scope: "platform"}, nil
}

// Show fetches the current preferences and writes them to the output.
func (p *PreferencesWindow) Show(ctx context.Context) error {
	prefs, err := p.source.Preferences(ctx, p.scope)
	if err != nil {
		return fmt.Errorf("fetch %s preferences: %w", p.scope, err)
	}
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{p.scope: prefs}); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return enc.Close()
}

var _ domain.PreferencesPanel = (*PreferencesWindow)(nil)
