// Package mcp provides the Model Context Protocol server integration for
// profile access.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/auth"
	"tableflip.dev/navigation/pkg/feed"
	"tableflip.dev/navigation/pkg/profile"
)

// Service keeps one profile session per login and shares it between tool
// calls.
type Service struct {
	App *app.Service

	mu       sync.Mutex
	sessions map[string]*app.Session
	game     feed.Game
}

var (
	// ErrLoginRequired is returned when a tool call names no login.
	ErrLoginRequired = errors.New("login is required")
	// ErrPostNotFound is returned for a row outside the posts section.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotLoaded is returned when an operation needs a loaded profile.
	ErrNotLoaded = errors.New("profile is not loaded")
)

// ProfileDTO is a transport-friendly projection of a view state.
type ProfileDTO struct {
	Session   string         `json:"session"`
	State     string         `json:"state"`
	User      *profile.User  `json:"user,omitempty"`
	DebugInfo string         `json:"debugInfo,omitempty"`
	Message   string         `json:"message,omitempty"`
	Sections  int            `json:"sections"`
	Rows      []int          `json:"rows"`
	Posts     []profile.Post `json:"posts,omitempty"`
}

// PostDTO is one post with its position.
type PostDTO struct {
	Section int `json:"section"`
	Row     int `json:"row"`
	profile.Post
}

// LoginDTO reports a credential check.
type LoginDTO struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// NewService builds a service wrapper around the application service.
func NewService(a *app.Service) *Service {
	return &Service{App: a, sessions: make(map[string]*app.Session)}
}

func (s *Service) session(login string) (*app.Session, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrLoginRequired
	}
	key := strings.ToLower(login)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}
	sess, err := s.App.OpenSession(login, nil)
	if err != nil {
		return nil, err
	}
	s.sessions[key] = sess
	return sess, nil
}

// LoadProfile sends ViewDidLoad for login and waits for the result.
func (s *Service) LoadProfile(ctx context.Context, login string) (*ProfileDTO, error) {
	sess, err := s.session(login)
	if err != nil {
		return nil, err
	}
	state, err := sess.Load(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(sess, state), nil
}

// Profile returns the current state for login, loading it first if the
// session has never loaded.
func (s *Service) Profile(ctx context.Context, login string) (*ProfileDTO, error) {
	sess, err := s.loaded(ctx, login)
	if err != nil {
		return nil, err
	}
	return toDTO(sess, sess.State()), nil
}

// GetPost returns the post at row of the posts section.
func (s *Service) GetPost(ctx context.Context, login string, row int) (*PostDTO, error) {
	sess, err := s.loaded(ctx, login)
	if err != nil {
		return nil, err
	}
	if sess.State().Kind() != profile.StateLoaded {
		return nil, ErrNotLoaded
	}
	post, ok := sess.Post(row)
	if !ok {
		return nil, fmt.Errorf("%w: row %d", ErrPostNotFound, row)
	}
	return &PostDTO{Section: 1, Row: row, Post: post}, nil
}

// UpdateStatus applies status to the loaded profile. With persist the user
// directory is updated too.
func (s *Service) UpdateStatus(ctx context.Context, login, status string, persist bool) (*ProfileDTO, error) {
	sess, err := s.loaded(ctx, login)
	if err != nil {
		return nil, err
	}
	if sess.State().Kind() != profile.StateLoaded {
		return nil, ErrNotLoaded
	}
	state, err := sess.UpdateStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, err
	}
	if persist {
		if _, err := s.App.SetStatus(ctx, login, strings.TrimSpace(status)); err != nil {
			return nil, err
		}
	}
	return toDTO(sess, state), nil
}

// ListUsers returns the user directory.
func (s *Service) ListUsers(ctx context.Context) ([]profile.User, error) {
	return s.App.Users(ctx)
}

// CheckLogin validates a credential pair.
func (s *Service) CheckLogin(login, password string) LoginDTO {
	if err := s.App.Login(login, password); err != nil {
		return LoginDTO{Message: auth.Message(err)}
	}
	return LoginDTO{OK: true}
}

// Guess plays one round of the word game shared by every client.
func (s *Service) Guess(word string) feed.Result {
	res, _ := s.game.Check(word)
	return res
}

// Close releases every session.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, key)
	}
}

func (s *Service) loaded(ctx context.Context, login string) (*app.Session, error) {
	sess, err := s.session(login)
	if err != nil {
		return nil, err
	}
	if sess.State().Kind() == profile.StateLoading {
		if _, err := sess.Load(ctx); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func toDTO(sess *app.Session, state profile.ViewState) *ProfileDTO {
	header, posts := sess.Rows()
	dto := &ProfileDTO{
		Session:  sess.ID(),
		State:    state.Kind().String(),
		Sections: 2,
		Rows:     []int{header, posts},
	}
	switch s := state.(type) {
	case profile.Loaded:
		user := s.User
		dto.User = &user
		dto.DebugInfo = s.DebugInfo
		dto.Posts = s.Posts
	case profile.Error:
		dto.Message = s.Message
	}
	return dto
}
