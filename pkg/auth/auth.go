// Package auth checks login credentials for the login screen.
package auth

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyLogin         = errors.New("auth: login is empty")
	ErrEmptyPassword      = errors.New("auth: password is empty")
	ErrInvalidCredentials = errors.New("auth: invalid login or password")
	ErrNoInspector        = errors.New("auth: no inspector configured")
)

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyLogin):
		return "Введите логин"
	case errors.Is(err, ErrEmptyPassword):
		return "Введите пароль"
	case errors.Is(err, ErrNoInspector):
		return "Ошибка инициализации системы авторизации"
	case errors.Is(err, ErrInvalidCredentials):
		return "Неверный логин или пароль"
	default:
		return err.Error()
	}
}

// Inspector decides whether a credential pair is valid.
type Inspector interface {
	Check(login, password string) bool
}

// InspectorFunc adapts a function to Inspector.
type InspectorFunc func(login, password string) bool

func (f InspectorFunc) Check(login, password string) bool { return f(login, password) }

// Checker holds one registered account. Only a bcrypt hash of the password
// is kept in memory.
type Checker struct {
	login string
	hash  []byte
}

// NewChecker registers login/password, hashing the password at cost.
func NewChecker(login, password string, cost int) (*Checker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}
	return &Checker{login: login, hash: hash}, nil
}

// Check implements Inspector. Logins are compared exactly.
func (c *Checker) Check(login, password string) bool {
	if c == nil || login != c.login {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
}

var (
	defaultOnce    sync.Once
	defaultChecker *Checker
)

// Default returns the process-wide checker for the built-in admin account.
func Default() *Checker {
	defaultOnce.Do(func() {
		c, err := NewChecker("admin", "12345", bcrypt.DefaultCost)
		if err != nil {
			// GenerateFromPassword only fails for oversized passwords.
			panic(err)
		}
		defaultChecker = c
	})
	return defaultChecker
}

// Factory makes the Inspector handed to the login screen.
type Factory interface {
	MakeInspector() Inspector
}

// DefaultFactory hands out Default.
type DefaultFactory struct{}

func (DefaultFactory) MakeInspector() Inspector { return Default() }

// Authenticate validates the pair in the order the login form reports
// problems: empty login, empty password, missing inspector, mismatch.
func Authenticate(in Inspector, login, password string) error {
	if strings.TrimSpace(login) == "" {
		return ErrEmptyLogin
	}
	if password == "" {
		return ErrEmptyPassword
	}
	if in == nil {
		return ErrNoInspector
	}
	if !in.Check(login, password) {
		return ErrInvalidCredentials
	}
	return nil
}
