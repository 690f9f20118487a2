package workspace

import (
	"context"

	"github.com/kompox/mashup/domain/model"
)

// GetInput identifies the workspace to fetch.
type GetInput struct {
	// WorkspaceID is the identifier of the workspace.
	WorkspaceID string `json:"workspace_id"`
}

// GetOutput wraps the retrieved workspace.
type GetOutput struct {
	// Workspace is the cached entity.
	Workspace *model.Workspace `json:"workspace"`
}

// Get retrieves a cached workspace by ID.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	ws, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Workspace: ws}, nil
}
