package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/localcache"
	"github.com/jonathan/resume-builder/internal/types"
)

type fakeRemote struct {
	data   map[string]types.UserSettings
	getErr error
	putErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: make(map[string]types.UserSettings)}
}

func (r *fakeRemote) GetSettings(_ context.Context, owner string) (*types.UserSettings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.data[owner]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeRemote) PutSettings(_ context.Context, owner string, s types.UserSettings) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.data[owner] = s
	return nil
}

func newLocal(t *testing.T) *localcache.Cache {
	t.Helper()
	c, err := localcache.Open(filepath.Join(t.TempDir(), localcache.DefaultFile))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestService_GetDefaults(t *testing.T) {
	svc := NewService(newFakeRemote(), newLocal(t))
	got, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultUserSettings(), got)
}

func TestService_UpdateWritesThrough(t *testing.T) {
	remote := newFakeRemote()
	local := newLocal(t)
	svc := NewService(remote, local)
	ctx := context.Background()

	saved, err := svc.Update(ctx, "u1", types.UserSettings{DisplayName: "Ada", DefaultTemplate: types.TemplateMinimal})
	require.NoError(t, err)
	assert.Equal(t, types.TemplateMinimal, saved.DefaultTemplate)
	assert.Equal(t, saved, remote.data["u1"])

	raw, ok, err := local.Get(ctx, settingsKey("u1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, raw, `"displayName":"Ada"`)
}

func TestService_UpdateValidation(t *testing.T) {
	svc := NewService(newFakeRemote(), nil)
	_, err := svc.Update(context.Background(), "u1", types.UserSettings{DefaultTemplate: types.TemplateModernLegacy})
	assert.Error(t, err)
}

func TestService_UpdateRemoteFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.putErr = errors.New("db down")
	local := newLocal(t)
	svc := NewService(remote, local)

	_, err := svc.Update(context.Background(), "u1", types.UserSettings{DisplayName: "Ada"})
	assert.ErrorIs(t, err, remote.putErr)

	_, ok, _ := local.Get(context.Background(), settingsKey("u1"))
	assert.False(t, ok, "local tier is only written after the remote write succeeds")
}

func TestService_FallsBackToLocalWhenRemoteFails(t *testing.T) {
	remote := newFakeRemote()
	svc := NewService(remote, newLocal(t))
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", types.UserSettings{DisplayName: "Ada", DefaultTemplate: types.TemplateCreative})
	require.NoError(t, err)

	remote.data["u1"] = types.UserSettings{DisplayName: "Remote", DefaultTemplate: types.TemplateProfessional}
	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Remote", got.DisplayName, "remote tier is authoritative when available")

	remote.getErr = errors.New("timeout")
	got, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Remote", got.DisplayName)
	assert.Equal(t, types.TemplateProfessional, got.DefaultTemplate)
}

func TestService_Unavailable(t *testing.T) {
	remote := newFakeRemote()
	remote.getErr = errors.New("timeout")
	svc := NewService(remote, newLocal(t))

	_, err := svc.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_IgnoresCorruptCache(t *testing.T) {
	remote := newFakeRemote()
	remote.getErr = errors.New("timeout")
	local := newLocal(t)
	ctx := context.Background()
	require.NoError(t, local.Set(ctx, settingsKey("u1"), `{"defaultTemplate": "fancy"}`))

	_, err := NewService(remote, local).Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_PreferredTemplate(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newLocal(t)
	svc := NewService(remote, local)

	assert.Equal(t, types.TemplateModern, svc.PreferredTemplate(ctx, "u1", ""))

	remote.data["u1"] = types.UserSettings{DefaultTemplate: types.TemplateProfessional}
	assert.Equal(t, types.TemplateProfessional, svc.PreferredTemplate(ctx, "u1", ""))

	require.NoError(t, svc.RememberTemplate(ctx, "u1", types.TemplateMinimal))
	assert.Equal(t, types.TemplateMinimal, svc.PreferredTemplate(ctx, "u1", ""))

	assert.Equal(t, types.TemplateModernLegacy, svc.PreferredTemplate(ctx, "u1", types.TemplateModernLegacy))
	assert.Equal(t, types.TemplateMinimal, svc.PreferredTemplate(ctx, "u1", "unknown"))
}

func TestService_RememberTemplate(t *testing.T) {
	svc := NewService(nil, newLocal(t))
	assert.Error(t, svc.RememberTemplate(context.Background(), "u1", "fancy"))
	assert.NoError(t, NewService(nil, nil).RememberTemplate(context.Background(), "u1", types.TemplateMinimal))
}
