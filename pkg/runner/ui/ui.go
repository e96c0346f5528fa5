// Package ui starts the terminal interface.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/navigation/pkg/app"
	teaui "tableflip.dev/navigation/pkg/tui/app"
)

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("ui needs an interactive terminal")

type UI struct {
	Service *app.Service
	// Login prefills the login form.
	Login string
}

func (u *UI) Do(_ context.Context) error {
	if !isTerminal(os.Stdin.Fd()) || !isTerminal(os.Stdout.Fd()) {
		return ErrNoTerminal
	}
	return teaui.Run(u.Service, teaui.Options{Login: u.Login})
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
