package ui

import (
	"context"
	"fmt"

	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/internal/logging"
)

// Visitor issues a request to an absolute platform URL.
type Visitor interface {
	Visit(ctx context.Context, rawURL string) error
}

// Resetter clears local state.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Purger drops every cached entry.
type Purger interface {
	Purge(ctx context.Context) error
}

// Navigator follows a platform URL and then discards the local session.
// Only logout navigates in a terminal session, so leaving the page means
// leaving the session.
type Navigator struct {
	Visitor Visitor
	Session Resetter
	Cache   Purger
}

func (n *Navigator) Navigate(ctx context.Context, url string) error {
	logger := logging.FromContext(ctx)
	if err := n.Visitor.Visit(ctx, url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if n.Session != nil {
		if err := n.Session.Reset(ctx); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
	}
	if n.Cache != nil {
		if err := n.Cache.Purge(ctx); err != nil {
			return fmt.Errorf("purge workspace cache: %w", err)
		}
	}
	logger.Info(ctx, "UI:navigate", "url", url)
	return nil
}

var _ domain.Navigator = (*Navigator)(nil)
