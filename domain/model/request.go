package model

// CreateWorkspaceRequest is the body of a workspace creation request.
type CreateWorkspaceRequest struct {
	AllowRenaming bool   `json:"allow_renaming"`
	Name          string `json:"name"`
}

// CloneWorkspaceRequest is the body of a request creating a workspace from a mashup.
type CloneWorkspaceRequest struct {
	AllowRenaming bool   `json:"allow_renaming"`
	Mashup        string `json:"mashup"`
	DryRun        bool   `json:"dry_run"`
}

// MergeMashupRequest is the body of a request merging a mashup into a workspace.
type MergeMashupRequest struct {
	Mashup string `json:"mashup"`
}
