// Package app wires configuration, the user directory and credential checks
// into the operations shared by the TUI, the CLI runners and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/navigation/pkg/auth"
	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/store"
	"tableflip.dev/navigation/pkg/users"
)

var errNoPersistence = errors.New("app: no persistence configured")

// Service provides high-level operations for profiles and the user directory.
// It wraps persistence and the lookup factory so UIs and CLIs can share logic.
type Service struct {
	Persistence store.Persistence
	Mode        profile.Mode
	// LoadDelay is the simulated latency of a successful load. Zero or
	// negative loads immediately.
	LoadDelay time.Duration
	Logger    *zap.Logger
	// Inspectors makes the credential checker; nil uses auth.DefaultFactory.
	Inspectors auth.Factory
}

// NewService builds a Service from resolved settings.
func NewService(settings *store.Settings, p store.Persistence, logger *zap.Logger) (*Service, error) {
	mode, err := profile.ParseMode(settings.Mode)
	if err != nil {
		return nil, err
	}
	return &Service{
		Persistence: p,
		Mode:        mode,
		LoadDelay:   settings.LoadDelay,
		Logger:      logger,
	}, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Lookup returns the user lookup for the configured mode.
func (s *Service) Lookup() profile.UserLookup {
	return users.LookupFor(s.Mode, s.Persistence)
}

// Login checks a credential pair. The returned error is one of the auth
// sentinels; auth.Message turns it into user-facing text.
func (s *Service) Login(login, password string) error {
	factory := s.Inspectors
	if factory == nil {
		factory = auth.DefaultFactory{}
	}
	err := auth.Authenticate(factory.MakeInspector(), login, password)
	if err != nil {
		s.logger().Info("login rejected", zap.String("login", login), zap.Error(err))
		return err
	}
	s.logger().Info("login accepted", zap.String("login", login), zap.Stringer("mode", s.Mode))
	return nil
}

// ProfileOptions carries the UI hooks for a new profile view model.
type ProfileOptions struct {
	Dispatcher        profile.Dispatcher
	Host              func() (profile.Handle, bool)
	OnPhotosRequested func()
}

// NewProfile builds the view model for login in the configured mode.
func (s *Service) NewProfile(login string, opts ProfileOptions) (*profile.ViewModel, error) {
	delay := s.LoadDelay
	if delay <= 0 {
		delay = -1
	}
	s.logger().Debug("building profile", zap.String("login", login), zap.Stringer("mode", s.Mode))
	return profile.New(profile.Config{
		Login:             login,
		Lookup:            s.Lookup(),
		Mode:              s.Mode,
		LoadDelay:         delay,
		Dispatcher:        opts.Dispatcher,
		Host:              opts.Host,
		OnPhotosRequested: opts.OnPhotosRequested,
		Logger:            s.logger(),
	})
}

// Users lists the directory.
func (s *Service) Users(ctx context.Context) ([]profile.User, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.List(ctx), nil
}

// AddUser stores u, replacing any record with the same login.
func (s *Service) AddUser(_ context.Context, u profile.User) (profile.User, error) {
	if s.Persistence == nil {
		return profile.User{}, errNoPersistence
	}
	u.Login = strings.TrimSpace(u.Login)
	if u.Status == "" {
		u.Status = "Online"
	}
	if err := s.Persistence.Put(u); err != nil {
		return profile.User{}, err
	}
	return u, nil
}

// SetStatus updates the stored status for login. A login without a
// directory record is first resolved through the mode's lookup and then
// saved.
func (s *Service) SetStatus(ctx context.Context, login, status string) (profile.User, error) {
	if s.Persistence == nil {
		return profile.User{}, errNoPersistence
	}
	u, err := s.Persistence.Get(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		u, err = s.Lookup().LookupUser(ctx, login)
	}
	if err != nil {
		return profile.User{}, fmt.Errorf("app: set status for %q: %w", login, err)
	}
	u = u.WithStatus(status)
	if err := s.Persistence.Put(u); err != nil {
		return profile.User{}, err
	}
	return u, nil
}

// RemoveUser deletes the record for login.
func (s *Service) RemoveUser(login string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := s.Persistence.Delete(login); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("app: remove %q: %w", login, users.ErrNotFound)
		}
		return err
	}
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// StatusChanges follows the directory record for login and emits its status
// whenever it differs from the status stored when StatusChanges returned.
// The channel closes with ctx.
func (s *Service) StatusChanges(ctx context.Context, login string) (<-chan string, error) {
	events, err := s.Watch(ctx)
	if err != nil {
		return nil, err
	}
	// Read the baseline after subscribing so a write racing the call is
	// either part of the baseline or seen as an event.
	last := ""
	if u, err := s.Persistence.Get(ctx, login); err == nil {
		last = u.Status
	}
	key := strings.ToLower(strings.TrimSpace(login))
	out := make(chan string, 1)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type == store.EventUserChanged && ev.Login != key {
				continue
			}
			u, err := s.Persistence.Get(ctx, login)
			if err != nil || u.Status == last {
				continue
			}
			last = u.Status
			select {
			case out <- u.Status:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
