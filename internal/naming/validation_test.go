package naming

import (
	"strings"
	"testing"
)

func TestValidateWorkspaceName(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "simple", value: "Demo", wantErr: false},
		{name: "spaces and unicode", value: "Mi espacio de trabajo ñ", wantErr: false},
		{name: "max length", value: strings.Repeat("a", workspaceNameMaxLength), wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "blank", value: "   ", wantErr: true},
		{name: "too long", value: strings.Repeat("a", workspaceNameMaxLength+1), wantErr: true},
		{name: "slash", value: "a/b", wantErr: true},
		{name: "control char", value: "a\nb", wantErr: true},
		{name: "invalid utf8", value: "\xff", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWorkspaceName(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
