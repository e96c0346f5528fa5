// Package load opens a profile without the terminal UI and prints every
// state the view model emits.
package load

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/printers"
	"tableflip.dev/navigation/pkg/profile"
)

// ErrProfileUnavailable is returned when the profile ends in the Error state.
var ErrProfileUnavailable = errors.New("profile unavailable")

// Load drives one profile view model to completion.
type Load struct {
	Service *app.Service
	Login   string
	// Status, when set, is applied with UpdateStatus once the profile has
	// loaded.
	Status  string
	// Save persists Status to the user directory as well.
	Save    bool
	JSON    bool
	Out     io.Writer
}

type jsonState struct {
	State     string         `json:"state"`
	User      *profile.User  `json:"user,omitempty"`
	Posts     []profile.Post `json:"posts,omitempty"`
	DebugInfo string         `json:"debugInfo,omitempty"`
	Message   string         `json:"message,omitempty"`
}

func (l *Load) out() io.Writer {
	if l.Out == nil {
		return color.Output
	}
	return l.Out
}

// Do loads the profile and prints each state.
func (l *Load) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not load, no service")
	}
	pp := printers.PrettyPrint{Out: l.out(), Width: 60}
	// States are emitted synchronously inside Load and UpdateStatus, so
	// printErr is settled once either returns.
	var printErr error
	show := func(s profile.ViewState) {
		if !l.JSON {
			pp.State(s)
			return
		}
		if err := l.printJSON(s); err != nil && printErr == nil {
			printErr = err
		}
	}

	sess, err := l.Service.OpenSession(l.Login, show)
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := sess.Load(ctx)
	if err != nil {
		return err
	}
	if printErr != nil {
		return fmt.Errorf("writing profile state: %w", printErr)
	}
	if e, ok := state.(profile.Error); ok {
		return fmt.Errorf("%w: %s", ErrProfileUnavailable, e.Message)
	}

	if l.Status == "" {
		return nil
	}
	if _, err := sess.UpdateStatus(l.Status); err != nil {
		return err
	}
	if printErr != nil {
		return fmt.Errorf("writing profile state: %w", printErr)
	}
	if l.Save {
		if _, err := l.Service.SetStatus(ctx, l.Login, l.Status); err != nil {
			return err
		}
	}
	return nil
}

func (l *Load) printJSON(state profile.ViewState) error {
	out := jsonState{State: state.Kind().String()}
	switch s := state.(type) {
	case profile.Loaded:
		out.User = &s.User
		out.Posts = s.Posts
		out.DebugInfo = s.DebugInfo
	case profile.Error:
		out.Message = s.Message
	}
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out(), string(b))
	return err
}
