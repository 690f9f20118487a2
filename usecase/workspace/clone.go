package workspace

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
)

// CloneInput contains data to create a workspace from a mashup template.
type CloneInput struct {
	// Mashup identifies the template.
	Mashup model.MashupRef `json:"mashup"`
	// AllowRenaming defaults to true when nil.
	AllowRenaming *bool `json:"allow_renaming,omitempty"`
	// DryRun validates the request without creating anything.
	DryRun bool `json:"dry_run"`
}

// Validate checks the input at the boundary.
func (in *CloneInput) Validate() error {
	if in == nil || in.Mashup.URI == "" {
		return model.ErrMashupInvalid
	}
	return nil
}

func (in *CloneInput) allowRenaming() bool {
	return in.AllowRenaming == nil || *in.AllowRenaming
}

// CloneOutput reports the outcome of a clone.
type CloneOutput struct {
	// Workspace is the created workspace; nil when nothing was created (204).
	Workspace *model.Workspace `json:"workspace,omitempty"`
	// Status is the HTTP status returned by the platform.
	Status int `json:"status"`
}

// CloneFromMashup creates a workspace from a mashup. A 201 response caches
// the new workspace; a 204 response (e.g. dry run) leaves the cache alone.
// Other success statuses are reported as errors.
func (u *UseCase) CloneFromMashup(ctx context.Context, in *CloneInput) (*CloneOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ws, status, err := u.API.CloneWorkspace(ctx, model.CloneWorkspaceRequest{
		AllowRenaming: in.allowRenaming(),
		Mashup:        in.Mashup.URI,
		DryRun:        in.DryRun,
	})
	if err != nil {
		return nil, requestFailure(ctx, cloneFailedMsg, err)
	}
	switch {
	case status == http.StatusCreated && ws != nil:
		ws = u.owned(ws)
		if err := u.cache(ctx, ws); err != nil {
			return nil, err
		}
		logging.FromContext(ctx).Debug(ctx, "UC:workspace.clone", "mashup", in.Mashup.URI, "id", ws.ID, "name", ws.Name)
		return &CloneOutput{Workspace: ws, Status: status}, nil
	case status == http.StatusNoContent:
		logging.FromContext(ctx).Debug(ctx, "UC:workspace.clone", "mashup", in.Mashup.URI, "dryRun", in.DryRun)
		return &CloneOutput{Status: status}, nil
	default:
		return nil, requestFailure(ctx, cloneFailedMsg, &model.RequestError{
			Op:     "workspace.clone",
			Kind:   model.KindUnexpectedStatus,
			Status: status,
			Reason: fmt.Sprintf("unexpected response status %d", status),
		})
	}
}
