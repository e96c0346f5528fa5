// Package users provides the profile.UserLookup implementations the app
// chooses between.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/store"
)

// ErrNotFound is returned when no user matches a login.
var ErrNotFound = errors.New("users: user not found")

// TestService answers every non-empty login with a synthetic user.
type TestService struct{}

var _ profile.UserLookup = TestService{}

// LookupUser implements profile.UserLookup.
func (TestService) LookupUser(_ context.Context, login string) (profile.User, error) {
	if login == "" {
		return profile.User{}, ErrNotFound
	}
	return profile.User{
		Login:    login,
		FullName: fmt.Sprintf("Тестовый Пользователь (%s)", login),
		Avatar:   "testtube.2",
		Status:   "Тестовый режим",
	}, nil
}

// ReleaseUser is the single account known to release builds.
func ReleaseUser() profile.User {
	return profile.User{
		Login:    "admin",
		FullName: "Иван Иванов",
		Avatar:   "avatar_placeholder",
		Status:   "В сети",
	}
}

// CurrentService knows exactly one user.
type CurrentService struct {
	user profile.User
}

var _ profile.UserLookup = (*CurrentService)(nil)

// NewCurrentService serves u for its own login, compared case-insensitively.
func NewCurrentService(u profile.User) *CurrentService {
	return &CurrentService{user: u}
}

// LookupUser implements profile.UserLookup.
func (s *CurrentService) LookupUser(_ context.Context, login string) (profile.User, error) {
	if !strings.EqualFold(s.user.Login, login) {
		return profile.User{}, ErrNotFound
	}
	return s.user, nil
}

// Directory resolves logins against the on-disk user directory.
type Directory struct {
	Persistence store.Persistence
}

var _ profile.UserLookup = Directory{}

// LookupUser implements profile.UserLookup.
func (d Directory) LookupUser(ctx context.Context, login string) (profile.User, error) {
	if d.Persistence == nil {
		return profile.User{}, ErrNotFound
	}
	u, err := d.Persistence.Get(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		return profile.User{}, ErrNotFound
	}
	if err != nil {
		return profile.User{}, fmt.Errorf("users: directory lookup %q: %w", login, err)
	}
	return u, nil
}

// Chain tries each lookup in order and returns the first hit. A lookup
// answering anything other than ErrNotFound stops the chain.
func Chain(lookups ...profile.UserLookup) profile.UserLookup {
	return profile.LookupFunc(func(ctx context.Context, login string) (profile.User, error) {
		for _, l := range lookups {
			u, err := l.LookupUser(ctx, login)
			if err == nil {
				return u, nil
			}
			if !errors.Is(err, ErrNotFound) {
				return profile.User{}, err
			}
		}
		return profile.User{}, ErrNotFound
	})
}

// LookupFor picks the lookup for mode. Debug builds accept any login.
// Release builds consult the directory first and fall back to ReleaseUser.
func LookupFor(mode profile.Mode, p store.Persistence) profile.UserLookup {
	if mode.IsDebug() {
		return TestService{}
	}
	release := NewCurrentService(ReleaseUser())
	if p == nil {
		return release
	}
	return Chain(Directory{Persistence: p}, release)
}
