package workspace

import (
	"context"
	"fmt"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
	"github.com/kompox/mashup/internal/metrics"
	"github.com/kompox/mashup/internal/naming"
)

// CreateInput contains data to create an empty workspace.
type CreateInput struct {
	// Name is the workspace name, unique within the owner's namespace.
	Name string `json:"name"`
	// AllowRenaming lets the server pick another name on collision.
	AllowRenaming bool `json:"allow_renaming"`
	// ReplaceNavigationState activates the new workspace without pushing a history entry.
	ReplaceNavigationState bool `json:"replace_navigation_state"`
}

// Validate checks the input at the boundary.
func (in *CreateInput) Validate() error {
	if in == nil {
		return model.ErrWorkspaceInvalid
	}
	if err := naming.ValidateWorkspaceName(in.Name); err != nil {
		return fmt.Errorf("%w: %v", model.ErrWorkspaceInvalid, err)
	}
	return nil
}

// CreateOutput wraps the created workspace.
type CreateOutput struct {
	// Workspace is the newly created entity, now cached and active.
	Workspace *model.Workspace `json:"workspace"`
}

// Create asks the platform for a new workspace, caches it and makes it the
// active workspace.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !in.AllowRenaming && u.Exists(ctx, in.Name) {
		return nil, fmt.Errorf("%w: %s/%s", model.ErrWorkspaceConflict, u.Username, in.Name)
	}
	ws, err := u.API.CreateWorkspace(ctx, model.CreateWorkspaceRequest{
		AllowRenaming: in.AllowRenaming,
		Name:          in.Name,
	})
	if err != nil {
		return nil, requestFailure(ctx, createFailedMsg, err)
	}
	ws = u.owned(ws)
	if err := u.cache(ctx, ws); err != nil {
		return nil, err
	}
	if err := u.Activator.Activate(ctx, ws, model.NavigationOptions{ReplaceNavigationState: in.ReplaceNavigationState}); err != nil {
		return nil, fmt.Errorf("activate workspace %s: %w", ws.ID, err)
	}
	logging.FromContext(ctx).Debug(ctx, "UC:workspace.create", "id", ws.ID, "creator", ws.Creator, "name", ws.Name)
	return &CreateOutput{Workspace: ws}, nil
}

// owned fills a creator the platform left out with the session owner, who
// made the request.
func (u *UseCase) owned(ws *model.Workspace) *model.Workspace {
	if ws != nil && ws.Creator == "" {
		ws.Creator = u.Username
	}
	return ws
}

// cache stores a workspace returned by the platform.
func (u *UseCase) cache(ctx context.Context, ws *model.Workspace) error {
	if ws == nil {
		return fmt.Errorf("cache workspace: %w", model.ErrWorkspaceInvalid)
	}
	if err := u.Repos.Workspace.Put(ctx, ws); err != nil {
		return fmt.Errorf("cache workspace %q: %w", ws.ID, err)
	}
	u.recorder().IncCacheMutation(metrics.CacheInsert)
	return nil
}
