package workspace

import (
	"context"
	"errors"

	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/logging"
)

// Message templates; %(errorMsg)s receives the server or transport reason.
const (
	createFailedMsg = "Error creating a workspace: %(errorMsg)s."
	cloneFailedMsg  = "Error adding the workspace: %(errorMsg)s."
	mergeFailedMsg  = "Error merging the mashup: %(errorMsg)s."
	deleteFailedMsg = "Error removing the workspace: %(errorMsg)s."
	loadFailedMsg   = "Error loading the workspace list: %(errorMsg)s."
)

// requestFailure renders tmpl for err, logs it, and returns a
// *model.RequestError carrying the message. The API's error is not modified.
func requestFailure(ctx context.Context, tmpl string, err error) error {
	var out model.RequestError
	var re *model.RequestError
	if errors.As(err, &re) {
		out = *re
	} else {
		out = model.RequestError{Kind: model.KindTransport, Reason: err.Error(), Err: err}
	}
	out.Message = logging.FormatAndLog(ctx, tmpl, map[string]string{"errorMsg": out.Reason},
		"op", out.Op, "kind", string(out.Kind), "status", out.Status)
	return &out
}
