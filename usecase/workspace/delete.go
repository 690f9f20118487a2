package workspace

import (
	"context"
	"errors"

	"github.com/kompox/mashup/domain/model"
)

// DeleteInput identifies the workspace to delete.
type DeleteInput struct {
	// WorkspaceID is the workspace identifier.
	WorkspaceID string `json:"workspace_id"`
}

// DeleteOutput reports the workspace activated in place of the deleted one.
type DeleteOutput struct {
	Active *model.Workspace `json:"active,omitempty"`
}

// Delete removes a workspace on the server and then from the cache, as Remove
// does. A workspace unknown to the cache is still deleted on the server and
// stops being active.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.WorkspaceID == "" {
		return nil, model.ErrWorkspaceInvalid
	}
	cached, err := u.Repos.Workspace.Get(ctx, in.WorkspaceID)
	if err != nil && !errors.Is(err, model.ErrWorkspaceNotFound) {
		return nil, err
	}
	if err := u.API.DeleteWorkspace(ctx, in.WorkspaceID); err != nil {
		return nil, requestFailure(ctx, deleteFailedMsg, err)
	}
	if cached == nil {
		if err := u.clearIfActive(ctx, &model.Workspace{ID: in.WorkspaceID}); err != nil {
			return nil, err
		}
		return &DeleteOutput{}, nil
	}
	out, err := u.Remove(ctx, &RemoveInput{Workspace: cached})
	if out == nil {
		return nil, err
	}
	return &DeleteOutput{Active: out.Active}, err
}
