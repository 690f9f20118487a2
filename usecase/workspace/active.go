package workspace

import (
	"context"

	"github.com/kompox/mashup/domain/model"
)

// ActiveOutput wraps the active workspace, nil when none is active.
type ActiveOutput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// Active returns the active workspace.
func (u *UseCase) Active(ctx context.Context) (*ActiveOutput, error) {
	ws, err := u.Activator.Active(ctx)
	if err != nil {
		return nil, err
	}
	return &ActiveOutput{Workspace: ws}, nil
}
