package workspace

import (
	"context"
	"fmt"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
)

// Monitor receives progress notes for long-running operations.
type Monitor interface {
	LogSubTask(msg string)
}

// MergeInput identifies the mashup to merge into the active workspace.
type MergeInput struct {
	Mashup model.MashupRef `json:"mashup"`
	// Monitor is optional.
	Monitor Monitor `json:"-"`
}

// MergeOutput wraps the refreshed active workspace.
type MergeOutput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// MergeIntoActive merges a mashup into the active workspace and refreshes it.
// It fails with model.ErrNoActiveWorkspace, without contacting the server,
// when no workspace is active.
func (u *UseCase) MergeIntoActive(ctx context.Context, in *MergeInput) (*MergeOutput, error) {
	if in == nil || in.Mashup.URI == "" {
		return nil, model.ErrMashupInvalid
	}
	active, err := u.Activator.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("read active workspace: %w", err)
	}
	if active == nil {
		return nil, model.ErrNoActiveWorkspace
	}
	if in.Monitor != nil {
		in.Monitor.LogSubTask("Merging mashup")
	}
	if err := u.API.MergeMashup(ctx, active.ID, model.MergeMashupRequest{Mashup: in.Mashup.URI}); err != nil {
		return nil, requestFailure(ctx, mergeFailedMsg, err)
	}
	if err := u.Activator.Activate(ctx, active, model.NavigationOptions{ReplaceNavigationState: true}); err != nil {
		return nil, fmt.Errorf("refresh workspace %s: %w", active.ID, err)
	}
	logging.FromContext(ctx).Debug(ctx, "UC:workspace.merge", "mashup", in.Mashup.URI, "id", active.ID)
	return &MergeOutput{Workspace: active}, nil
}
