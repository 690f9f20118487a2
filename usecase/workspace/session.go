package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/kompox/mashup/domain"
)

var (
	errNoPreferences = errors.New("preferences panel not configured")
	errNoNavigator   = errors.New("navigator not configured")
)

// ShowPreferences displays the platform preferences panel. The panel is
// built on first use and reused afterwards; a failed build is retried on
// the next call.
func (u *UseCase) ShowPreferences(ctx context.Context) error {
	panel, err := u.preferencesPanel()
	if err != nil {
		return err
	}
	return panel.Show(ctx)
}

func (u *UseCase) preferencesPanel() (domain.PreferencesPanel, error) {
	u.prefMu.Lock()
	defer u.prefMu.Unlock()
	if u.prefPanel != nil {
		return u.prefPanel, nil
	}
	if u.Preferences == nil {
		return nil, errNoPreferences
	}
	p, err := u.Preferences()
	if err != nil {
		return nil, fmt.Errorf("build preferences panel: %w", err)
	}
	u.prefPanel = p
	return p, nil
}

// Logout navigates to the logout endpoint. The session is unusable afterwards.
func (u *UseCase) Logout(ctx context.Context) error {
	if u.Navigator == nil {
		return errNoNavigator
	}
	return u.Navigator.Navigate(ctx, u.LogoutURL)
}
