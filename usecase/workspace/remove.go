package workspace

import (
	"context"
	"fmt"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
	"github.com/kompox/mashup/internal/metrics"
)

// RemoveInput identifies the cached workspace to forget.
type RemoveInput struct {
	// Workspace must carry ID, Creator and Name.
	Workspace *model.Workspace `json:"workspace"`
}

// RemoveOutput reports the workspace activated in place of the removed one.
type RemoveOutput struct {
	Active *model.Workspace `json:"active"`
}

// Remove drops a workspace from the local cache only; the server is not
// contacted. The session owner's oldest remaining workspace becomes active.
// If none remains, Remove returns model.ErrNoWorkspacesRemaining after the
// removal; a removed active workspace is cleared so that nothing stays
// active.
func (u *UseCase) Remove(ctx context.Context, in *RemoveInput) (*RemoveOutput, error) {
	if in == nil || in.Workspace == nil {
		return nil, model.ErrWorkspaceInvalid
	}
	ws := in.Workspace
	if err := u.Repos.Workspace.Delete(ctx, ws); err != nil {
		return nil, err
	}
	u.recorder().IncCacheMutation(metrics.CacheRemove)
	logging.FromContext(ctx).Debug(ctx, "UC:workspace.remove", "id", ws.ID, "creator", ws.Creator, "name", ws.Name)

	remaining, err := u.Repos.Workspace.List(ctx, u.Username)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		if err := u.clearIfActive(ctx, ws); err != nil {
			return nil, err
		}
		return &RemoveOutput{}, model.ErrNoWorkspacesRemaining
	}
	next := remaining[0]
	if err := u.Activator.Activate(ctx, next, model.NavigationOptions{}); err != nil {
		return nil, fmt.Errorf("activate workspace %s: %w", next.ID, err)
	}
	return &RemoveOutput{Active: next}, nil
}

// clearIfActive deactivates ws when it is the active workspace.
func (u *UseCase) clearIfActive(ctx context.Context, ws *model.Workspace) error {
	active, err := u.Activator.Active(ctx)
	if err != nil {
		return fmt.Errorf("read active workspace: %w", err)
	}
	if active == nil || active.ID != ws.ID {
		return nil
	}
	if err := u.Activator.Clear(ctx); err != nil {
		return fmt.Errorf("clear active workspace %s: %w", ws.ID, err)
	}
	return nil
}
