package workspace

import (
	"context"
	"errors"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
)

// ListInput selects whose cached workspaces to list.
type ListInput struct {
	// Owner defaults to the session owner.
	Owner string `json:"owner,omitempty"`
}

// ListOutput wraps listed workspaces.
type ListOutput struct {
	// Workspaces is the collection in insertion order.
	Workspaces []*model.Workspace `json:"workspaces"`
}

// List returns cached workspaces of one owner.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	owner := u.Username
	if in != nil && in.Owner != "" {
		owner = in.Owner
	}
	items, err := u.Repos.Workspace.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Workspaces: items}, nil
}

// Exists reports whether the session owner has a cached workspace named name.
// It is a cache check: workspaces created elsewhere and not yet loaded are
// reported as absent.
func (u *UseCase) Exists(ctx context.Context, name string) bool {
	_, err := u.Repos.Workspace.Lookup(ctx, u.Username, name)
	if err != nil && !errors.Is(err, model.ErrWorkspaceNotFound) {
		logging.FromContext(ctx).Warn(ctx, "UC:workspace.exists lookup failed", "name", name, "err", err)
	}
	return err == nil
}
