// Package users manages the user directory from the command line.
package users

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
	"tableflip.dev/navigation/pkg/store"
)

// Users holds what every users subcommand needs.
type Users struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (u *Users) out() io.Writer {
	if u.Out == nil {
		return color.Output
	}
	return u.Out
}

func (u *Users) check() error {
	if u.Service == nil {
		return errors.New("can not manage users, no service")
	}
	return nil
}

// List prints every record.
func (u *Users) List(ctx context.Context) error {
	if err := u.check(); err != nil {
		return err
	}
	all, err := u.Service.Users(ctx)
	if err != nil {
		return err
	}
	if u.JSON {
		return u.printJSON(all)
	}
	pp := printers.PrettyPrint{Out: u.out()}
	pp.Users(all)
	return nil
}

// Add stores a record.
func (u *Users) Add(ctx context.Context, user profile.User) error {
	if err := u.check(); err != nil {
		return err
	}
	saved, err := u.Service.AddUser(ctx, user)
	if err != nil {
		return err
	}
	return u.report(saved, "added")
}

// Status changes the stored status of login.
func (u *Users) Status(ctx context.Context, login, status string) error {
	if err := u.check(); err != nil {
		return err
	}
	saved, err := u.Service.SetStatus(ctx, login, status)
	if err != nil {
		return err
	}
	return u.report(saved, "updated")
}

// Remove deletes the record for login.
func (u *Users) Remove(_ context.Context, login string) error {
	if err := u.check(); err != nil {
		return err
	}
	if err := u.Service.RemoveUser(login); err != nil {
		return err
	}
	if u.JSON {
		return u.printJSON(map[string]string{"removed": login})
	}
	_, _ = color.New(color.Faint).Fprintf(u.out(), "removed %s\n", login)
	return nil
}

// Watch prints directory changes until ctx is done.
func (u *Users) Watch(ctx context.Context) error {
	if err := u.check(); err != nil {
		return err
	}
	events, err := u.Service.Watch(ctx)
	if err != nil {
		return err
	}
	_, _ = color.New(color.Faint, color.Italic).Fprintln(u.out(), "watching for changes, ctrl+c to stop")
	for ev := range events {
		if err := u.printEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (u *Users) printEvent(ctx context.Context, ev store.Event) error {
	if ev.Type != store.EventUserChanged {
		if u.JSON {
			return u.printJSON(map[string]string{"event": ev.Type.String()})
		}
		_, _ = color.New(color.FgYellow).Fprintln(u.out(), "directory changed")
		return nil
	}

	user, err := u.Service.Persistence.Get(ctx, ev.Login)
	if errors.Is(err, store.ErrNotFound) {
		if u.JSON {
			return u.printJSON(map[string]string{"event": "removed", "login": ev.Login})
		}
		_, _ = color.New(color.FgRed).Fprintf(u.out(), "- %s\n", ev.Login)
		return nil
	}
	if err != nil {
		return err
	}
	if u.JSON {
		return u.printJSON(map[string]any{"event": ev.Type.String(), "user": user})
	}
	_, _ = color.New(color.FgGreen).Fprintf(u.out(), "~ %s: %s\n", user.Login, user.Status)
	return nil
}

func (u *Users) report(user profile.User, verb string) error {
	if u.JSON {
		return u.printJSON(user)
	}
	_, _ = color.New(color.Bold).Fprintf(u.out(), "%s %s", verb, user.Login)
	_, _ = color.New(color.Faint).Fprintf(u.out(), " (%s, %s)\n", user.FullName, user.Status)
	return nil
}

func (u *Users) printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(u.out(), string(b))
	return err
}
