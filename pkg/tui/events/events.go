// Package events defines the Bubble Tea messages exchanged between the TUI
// screens and the profile view model.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/navigation/pkg/profile"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

const (
	LoginScreen   ComponentID = "login"
	ProfileScreen ComponentID = "profile"
	PhotosScreen  ComponentID = "photos"
	StatusWatcher ComponentID = "watch"
)

// Describer is implemented by messages worth logging.
type Describer interface {
	Describe() string
}

// DispatchMsg carries a view-model callback onto the program goroutine.
type DispatchMsg struct {
	Fn func()
}

// Dispatcher returns a profile.Dispatcher that posts DispatchMsg through
// send, usually tea.Program.Send.
func Dispatcher(send func(tea.Msg)) profile.Dispatcher {
	return profile.DispatcherFunc(func(fn func()) {
		send(DispatchMsg{Fn: fn})
	})
}

// LoginMsg is emitted by the login screen after the credentials passed.
type LoginMsg struct {
	Component ComponentID
	Login     string
}

// Describe renders the login for logs.
func (m LoginMsg) Describe() string {
	return fmt.Sprintf(`login:%q`, m.Login)
}

// LoginCmd wraps LoginMsg into a tea.Cmd.
func LoginCmd(component ComponentID, login string) tea.Cmd {
	return func() tea.Msg {
		return LoginMsg{Component: component, Login: login}
	}
}

// PhotosRequestedMsg asks the program to show the photo gallery.
type PhotosRequestedMsg struct {
	Component ComponentID
}

// Describe implements Describer.
func (m PhotosRequestedMsg) Describe() string {
	return fmt.Sprintf(`from:%q`, m.Component)
}

// StatusChangedMsg reports a status written to the user directory by
// another process.
type StatusChangedMsg struct {
	Component ComponentID
	Status    string
}

// Describe implements Describer.
func (m StatusChangedMsg) Describe() string {
	return fmt.Sprintf(`status:%q`, m.Status)
}
