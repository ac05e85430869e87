// Package settings resolves user settings across the remote store and the
// local cache, and remembers the last template each user chose.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// Remote is the authoritative settings store
type Remote interface {
	GetSettings(ctx context.Context, owner string) (*types.UserSettings, error)
	PutSettings(ctx context.Context, owner string, settings types.UserSettings) error
}

// Local is the offline key/value tier
type Local interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ErrUnavailable is returned when neither tier can answer
var ErrUnavailable = errors.New("settings unavailable")

// Service reads settings from the remote tier and falls back to the local
// cache only when the remote tier fails. Either tier may be nil.
type Service struct {
	remote Remote
	local  Local
}

// NewService creates a settings service.
func NewService(remote Remote, local Local) *Service {
	return &Service{remote: remote, local: local}
}

var _ session.Preferences = (*Service)(nil)

func settingsKey(owner string) string { return "settings:" + owner }
func templateKey(owner string) string { return "template:" + owner }

// Get returns owner's settings, defaults filled in.
func (s *Service) Get(ctx context.Context, owner string) (types.UserSettings, error) {
	var remoteErr error
	if s.remote != nil {
		got, err := s.remote.GetSettings(ctx, owner)
		if err == nil {
			if got == nil {
				return types.DefaultUserSettings(), nil
			}
			s.cache(ctx, owner, *got)
			return got.Normalize(), nil
		}
		remoteErr = err
		log.Printf("[settings] remote read failed for %s, trying local cache: %v", owner, err)
	}

	if cached, ok := s.cached(ctx, owner); ok {
		return cached.Normalize(), nil
	}
	if remoteErr != nil {
		return types.UserSettings{}, fmt.Errorf("%w: %v", ErrUnavailable, remoteErr)
	}
	return types.DefaultUserSettings(), nil
}

// Update validates and saves owner's settings to the remote tier, then
// writes them through to the local cache.
func (s *Service) Update(ctx context.Context, owner string, settings types.UserSettings) (types.UserSettings, error) {
	if err := types.ValidateStruct(settings); err != nil {
		return types.UserSettings{}, err
	}
	settings = settings.Normalize()
	if s.remote != nil {
		if err := s.remote.PutSettings(ctx, owner, settings); err != nil {
			return types.UserSettings{}, fmt.Errorf("failed to save settings: %w", err)
		}
	}
	s.cache(ctx, owner, settings)
	return settings, nil
}

func (s *Service) cache(ctx context.Context, owner string, settings types.UserSettings) {
	if s.local == nil {
		return
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		log.Printf("[settings] failed to encode settings for %s: %v", owner, err)
		return
	}
	if err := s.local.Set(ctx, settingsKey(owner), string(raw)); err != nil {
		log.Printf("[settings] local write failed for %s: %v", owner, err)
	}
}

func (s *Service) cached(ctx context.Context, owner string) (types.UserSettings, bool) {
	if s.local == nil {
		return types.UserSettings{}, false
	}
	raw, ok, err := s.local.Get(ctx, settingsKey(owner))
	if err != nil {
		log.Printf("[settings] local read failed for %s: %v", owner, err)
		return types.UserSettings{}, false
	}
	if !ok {
		return types.UserSettings{}, false
	}
	if err := schemas.ValidateSettingsJSON([]byte(raw)); err != nil {
		log.Printf("[settings] ignoring invalid cached settings for %s: %v", owner, err)
		return types.UserSettings{}, false
	}
	var out types.UserSettings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return types.UserSettings{}, false
	}
	return out, true
}

// PreferredTemplate resolves the template to display: the resume's saved
// template, then the locally remembered choice, then the user's default,
// then modern.
func (s *Service) PreferredTemplate(ctx context.Context, owner string, saved types.TemplateName) types.TemplateName {
	if saved.Valid() {
		return saved
	}
	if s.local != nil {
		if v, ok, err := s.local.Get(ctx, templateKey(owner)); err == nil && ok {
			if name := types.TemplateName(v); name.Valid() {
				return name
			}
		}
	}
	if us, err := s.Get(ctx, owner); err == nil && us.DefaultTemplate.Valid() {
		return us.DefaultTemplate
	}
	return types.DefaultTemplate
}

// RememberTemplate records the last template owner used on this machine.
func (s *Service) RememberTemplate(ctx context.Context, owner string, name types.TemplateName) error {
	if s.local == nil {
		return nil
	}
	if !name.Valid() {
		return fmt.Errorf("unknown template: %q", name)
	}
	return s.local.Set(ctx, templateKey(owner), string(name))
}
