// Package login checks a credential pair from the command line.
package login

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/auth"
	"tableflip.dev/navigation/pkg/snake"
)

// Login runs auth.Authenticate, prompting for whatever was not given.
type Login struct {
	Service  *app.Service
	Login    string
	Password string
	// Prompt asks for a missing login or password. Without it they stay
	// empty and validation reports them.
	Prompt   *snake.Prompter
	Out      io.Writer
}

// Do prompts as needed and reports the outcome.
func (l *Login) Do(_ context.Context) error {
	if l.Service == nil {
		return errors.New("can not log in, no service")
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}

	if l.Prompt != nil {
		var err error
		if l.Login == "" {
			if l.Login, err = l.Prompt.Ask("Логин", 0, nil); err != nil {
				return err
			}
		}
		if l.Password == "" {
			if l.Password, err = l.Prompt.Ask("Пароль", '•', nil); err != nil {
				return err
			}
		}
	}

	if err := l.Service.Login(l.Login, l.Password); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(out, auth.Message(err))
		return err
	}
	_, _ = color.New(color.FgGreen, color.Bold).Fprintf(out, "Добро пожаловать, %s\n", l.Login)
	return nil
}

// NeedsPrompt reports whether Do would have to ask for anything.
func (l *Login) NeedsPrompt() bool {
	return l.Login == "" || l.Password == ""
}
