package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kompox/mashup/domain/model"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenFromURL("sqlite:" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenFromURL() error = %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	return db
}

func TestOpenFromURL_UnsupportedScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://localhost/db"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestOpenFromURL_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "cache.db")
	db, err := OpenFromURL("sqlite:" + path)
	if err != nil {
		t.Fatalf("OpenFromURL() error = %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestWorkspaceCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewWorkspaceCache(openTestDB(t))
	ws := &model.Workspace{
		ID: "42", Creator: "alice", Name: "Demo",
		Extra: map[string]json.RawMessage{"shared": json.RawMessage(`true`)},
	}
	if err := c.Put(ctx, ws); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := c.Lookup(ctx, "alice", "Demo")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.ID != "42" || string(got.Extra["shared"]) != "true" {
		t.Fatalf("Lookup() = %+v", got)
	}
	if _, err := c.Get(ctx, "43"); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Fatalf("Get(missing) error = %v", err)
	}
}

func TestWorkspaceCache_OrderAndEviction(t *testing.T) {
	ctx := context.Background()
	c := NewWorkspaceCache(openTestDB(t))
	for _, ws := range []*model.Workspace{
		{ID: "1", Creator: "alice", Name: "a"},
		{ID: "2", Creator: "alice", Name: "b"},
		{ID: "1", Creator: "alice", Name: "a"}, // refresh keeps position
		{ID: "3", Creator: "alice", Name: "b"}, // evicts id 2
	} {
		if err := c.Put(ctx, ws); err != nil {
			t.Fatalf("Put(%+v) error = %v", ws, err)
		}
	}
	items, err := c.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Fatalf("List() = %+v, want ids [1 3]", items)
	}
	if _, err := c.Get(ctx, "2"); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Fatalf("evicted id still present: %v", err)
	}
}

func TestWorkspaceCache_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	c := NewWorkspaceCache(openTestDB(t))
	a := &model.Workspace{ID: "1", Creator: "alice", Name: "a"}
	_ = c.Put(ctx, a)
	_ = c.Put(ctx, &model.Workspace{ID: "2", Creator: "alice", Name: "b"})
	if err := c.Delete(ctx, a); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.Delete(ctx, a); !errors.Is(err, model.ErrWorkspaceNotFound) {
		t.Fatalf("second Delete() error = %v", err)
	}
	if err := c.Purge(ctx); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	items, _ := c.List(ctx, "alice")
	if len(items) != 0 {
		t.Fatalf("List() after purge = %+v", items)
	}
}

func TestSession_ActivateAndReset(t *testing.T) {
	ctx := context.Background()
	s := NewSession(openTestDB(t))
	if ws, err := s.Active(ctx); err != nil || ws != nil {
		t.Fatalf("Active() on empty session = %+v, %v", ws, err)
	}
	_ = s.Activate(ctx, &model.Workspace{ID: "1", Creator: "alice", Name: "a"}, model.NavigationOptions{})
	_ = s.Activate(ctx, &model.Workspace{ID: "2", Creator: "alice", Name: "b"}, model.NavigationOptions{ReplaceNavigationState: true})
	_ = s.Activate(ctx, &model.Workspace{ID: "3", Creator: "alice", Name: "c"}, model.NavigationOptions{})

	ws, err := s.Active(ctx)
	if err != nil || ws == nil || ws.ID != "3" || ws.Name != "c" {
		t.Fatalf("Active() = %+v, %v", ws, err)
	}
	h, err := s.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(h) != 2 || h[0] != "2" || h[1] != "3" {
		t.Fatalf("History() = %v, want [2 3]", h)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if ws, _ := s.Active(ctx); ws != nil {
		t.Fatalf("Active() after Reset = %+v", ws)
	}
}

func TestSession_ClearKeepsHistory(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewSession(db)
	_ = s.Activate(ctx, &model.Workspace{ID: "1", Creator: "alice", Name: "a"}, model.NavigationOptions{})
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	// A second session over the same database sees the cleared state.
	if ws, err := NewSession(db).Active(ctx); err != nil || ws != nil {
		t.Fatalf("Active() after Clear = %+v, %v", ws, err)
	}
	h, err := s.History(ctx)
	if err != nil || len(h) != 1 || h[0] != "1" {
		t.Fatalf("History() after Clear = %v, %v", h, err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() on empty session error = %v", err)
	}
}
