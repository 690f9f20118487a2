package workspace

import (
	"sync"

	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/internal/metrics"
)

// Repos holds repositories needed for workspace use cases.
type Repos struct {
	Workspace domain.WorkspaceCache
}

// UseCase is the workspace directory: it mutates server-side workspaces
// through API and mirrors the results in Repos.Workspace. Construct it once
// per session and share the pointer.
type UseCase struct {
	Repos     *Repos
	API       domain.WorkspaceAPI
	Activator domain.WorkspaceActivator
	Navigator domain.Navigator
	// Username is the session owner; Exists, List and Remove work in its namespace.
	Username string
	// LogoutURL is where Logout navigates to.
	LogoutURL string
	// Preferences builds the preferences panel on first use.
	Preferences func() (domain.PreferencesPanel, error)
	Recorder    metrics.Recorder

	prefMu    sync.Mutex
	prefPanel domain.PreferencesPanel
}

func (u *UseCase) recorder() metrics.Recorder {
	if u.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return u.Recorder
}
