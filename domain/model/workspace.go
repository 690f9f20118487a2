package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Workspace represents a named, owner-scoped workspace held by the platform.
// ID is assigned by the server. Creator and Name are unique as a pair.
type Workspace struct {
	ID      string
	Creator string
	Name    string
	// Extra keeps server-defined fields this client does not interpret.
	Extra map[string]json.RawMessage
}

// Key returns the (creator, name) pair identifying the workspace within its owner namespace.
func (w *Workspace) Key() (string, string) {
	return w.Creator, w.Name
}

// Clone returns a deep copy so cached records cannot be mutated by callers.
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}
	cp := *w
	if w.Extra != nil {
		cp.Extra = make(map[string]json.RawMessage, len(w.Extra))
		for k, v := range w.Extra {
			cp.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &cp
}

// UnmarshalJSON accepts the server representation. The id may be a JSON
// number or string; it is normalized to its decimal string form.
func (w *Workspace) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("workspace: null object")
	}
	*w = Workspace{}
	if v, ok := raw["id"]; ok {
		id, err := decodeID(v)
		if err != nil {
			return fmt.Errorf("workspace id: %w", err)
		}
		w.ID = id
		delete(raw, "id")
	}
	if v, ok := raw["creator"]; ok {
		if err := json.Unmarshal(v, &w.Creator); err != nil {
			return fmt.Errorf("workspace creator: %w", err)
		}
		delete(raw, "creator")
	}
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &w.Name); err != nil {
			return fmt.Errorf("workspace name: %w", err)
		}
		delete(raw, "name")
	}
	if len(raw) > 0 {
		w.Extra = raw
	}
	return nil
}

// MarshalJSON writes known fields alongside the preserved extra fields.
func (w Workspace) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(w.Extra)+3)
	for k, v := range w.Extra {
		out[k] = v
	}
	out["id"] = w.ID
	out["creator"] = w.Creator
	out["name"] = w.Name
	return json.Marshal(out)
}

func decodeID(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return "", nil
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// MashupRef references a reusable mashup template by URI.
type MashupRef struct {
	URI string `json:"uri" yaml:"uri"`
}

// NavigationOptions control how activating a workspace affects navigation history.
type NavigationOptions struct {
	// ReplaceNavigationState replaces the current history entry instead of pushing one.
	ReplaceNavigationState bool
}
