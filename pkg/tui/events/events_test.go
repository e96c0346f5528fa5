package events

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
)

func TestDispatcherPostsMessage(t *testing.T) {
	var sent []tea.Msg
	d := Dispatcher(func(msg tea.Msg) { sent = append(sent, msg) })

	ran := false
	d.Dispatch(func() { ran = true })
	if ran {
		t.Fatal("callback ran before the program delivered it")
	}
	if len(sent) != 1 {
		t.Fatalf("sent %d messages", len(sent))
	}
	msg, ok := sent[0].(DispatchMsg)
	if !ok {
		t.Fatalf("sent %T, want DispatchMsg", sent[0])
	}
	msg.Fn()
	if !ran {
		t.Fatal("callback did not run")
	}
}

func TestDescribe(t *testing.T) {
	cases := map[string]Describer{
		`login:"admin"`:   LoginMsg{Login: "admin"},
		`status:"Занят"`:   StatusChangedMsg{Status: "Занят"},
		`from:"profile"`:   PhotosRequestedMsg{Component: ProfileScreen},
	}
	for want, msg := range cases {
		if got := msg.Describe(); got != want {
			t.Errorf("%T.Describe() = %q, want %q", msg, got, want)
		}
	}
	if msg := LoginCmd(LoginScreen, "neo")(); msg.(LoginMsg).Login != "neo" {
		t.Fatalf("LoginCmd produced %#v", msg)
	}
}
