package workspace

import (
	"context"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
)

// LoadInput placeholder for future filters.
type LoadInput struct{}

// LoadOutput wraps the workspaces fetched from the server.
type LoadOutput struct {
	Workspaces []*model.Workspace `json:"workspaces"`
}

// Load fetches the workspace list from the server and caches every entry.
// Entries lacking an id, creator or name are skipped with a warning.
func (u *UseCase) Load(ctx context.Context, _ *LoadInput) (*LoadOutput, error) {
	items, err := u.API.ListWorkspaces(ctx)
	if err != nil {
		return nil, requestFailure(ctx, loadFailedMsg, err)
	}
	logger := logging.FromContext(ctx)
	out := make([]*model.Workspace, 0, len(items))
	for _, ws := range items {
		if ws == nil || ws.ID == "" || ws.Creator == "" || ws.Name == "" {
			logger.Warn(ctx, "UC:workspace.load skipping incomplete entry", "workspace", ws)
			continue
		}
		if err := u.cache(ctx, ws); err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	logger.Debug(ctx, "UC:workspace.load", "count", len(out))
	return &LoadOutput{Workspaces: out}, nil
}
