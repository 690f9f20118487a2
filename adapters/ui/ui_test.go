package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kompox/mashup/adapters/store/inmem"
	"github.com/kompox/mashup/domain/model"
)

type stubSource struct {
	prefs  map[string]any
	err    error
	scopes []string
}

func (s *stubSource) Preferences(_ context.Context, scope string) (map[string]any, error) {
	s.scopes = append(s.scopes, scope)
	return s.prefs, s.err
}

func TestPreferencesWindow_Show(t *testing.T) {
	src := &stubSource{prefs: map[string]any{"theme": "dark", "language": "en"}}
	var buf bytes.Buffer
	w, err := NewPreferencesWindow(src, &buf)
	require.NoError(t, err)

	require.NoError(t, w.Show(context.Background()))
	assert.Equal(t, []string{"platform"}, src.scopes)

	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "dark", got["platform"]["theme"])
	assert.Equal(t, "en", got["platform"]["language"])
}

func TestPreferencesWindow_Errors(t *testing.T) {
	_, err := NewPreferencesWindow(nil, &bytes.Buffer{})
	assert.Error(t, err)
	_, err = NewPreferencesWindow(&stubSource{}, nil)
	assert.Error(t, err)

	cause := errors.New("boom")
	var buf bytes.Buffer
	w, err := NewPreferencesWindow(&stubSource{err: cause}, &buf)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Show(context.Background()), cause)
	assert.Zero(t, buf.Len())
}

type stubVisitor struct {
	urls []string
	err  error
}

func (v *stubVisitor) Visit(_ context.Context, rawURL string) error {
	v.urls = append(v.urls, rawURL)
	return v.err
}

func TestNavigator_ClearsLocalState(t *testing.T) {
	ctx := context.Background()
	cache := inmem.NewWorkspaceCache()
	session := inmem.NewSession()
	ws := &model.Workspace{ID: "1", Creator: "alice", Name: "a"}
	require.NoError(t, cache.Put(ctx, ws))
	require.NoError(t, session.Activate(ctx, ws, model.NavigationOptions{}))

	v := &stubVisitor{}
	nav := &Navigator{Visitor: v, Session: session, Cache: cache}
	require.NoError(t, nav.Navigate(ctx, "https://platform.example.com/logout"))

	assert.Equal(t, []string{"https://platform.example.com/logout"}, v.urls)
	active, err := session.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Empty(t, session.History())
	_, err = cache.Get(ctx, "1")
	assert.ErrorIs(t, err, model.ErrWorkspaceNotFound)
}

func TestNavigator_VisitFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	session := inmem.NewSession()
	ws := &model.Workspace{ID: "1", Creator: "alice", Name: "a"}
	require.NoError(t, session.Activate(ctx, ws, model.NavigationOptions{}))

	nav := &Navigator{Visitor: &stubVisitor{err: errors.New("offline")}, Session: session}
	assert.Error(t, nav.Navigate(ctx, "https://platform.example.com/logout"))
	active, _ := session.Active(ctx)
	require.NotNil(t, active)
	assert.Equal(t, "1", active.ID)
}
