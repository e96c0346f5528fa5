package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/navigation/pkg/profile"
)

func TestSessionLoadsAndUpdatesStatus(t *testing.T) {
	svc := &Service{Mode: profile.ModeDebug}
	var seen []profile.StateKind
	sess, err := svc.OpenSession("admin", func(s profile.ViewState) { seen = append(seen, s.Kind()) })
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	state, err := sess.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loaded, ok := state.(profile.Loaded)
	if !ok {
		t.Fatalf("state = %#v", state)
	}
	if loaded.User.FullName != "Тестовый Пользователь (admin)" {
		t.Fatalf("full name = %q", loaded.User.FullName)
	}
	if len(seen) != 2 || seen[0] != profile.StateLoading || seen[1] != profile.StateLoaded {
		t.Fatalf("observed states %v", seen)
	}

	header, posts := sess.Rows()
	if header != 1 || posts != len(profile.SeedPosts()) {
		t.Fatalf("rows = %d, %d", header, posts)
	}
	if _, ok := sess.Post(posts); ok {
		t.Fatal("post past the end")
	}

	state, err = sess.UpdateStatus("Занят")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got := state.(profile.Loaded).User.Status; got != "Занят" {
		t.Fatalf("status = %q", got)
	}
}

func TestSessionLoadError(t *testing.T) {
	svc := &Service{Mode: profile.ModeRelease}
	sess, err := svc.OpenSession("ghost", nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	defer sess.Close()

	state, err := sess.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e, ok := state.(profile.Error); !ok || e.Message != profile.MessageUserNotFound {
		t.Fatalf("state = %#v", state)
	}
}

func TestSessionClosed(t *testing.T) {
	svc := &Service{Mode: profile.ModeDebug}
	sess, err := svc.OpenSession("admin", nil)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	sess.Close()
	sess.Close()
	if _, err := sess.Load(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Load after close = %v", err)
	}
	if _, err := sess.UpdateStatus("x"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("UpdateStatus after close = %v", err)
	}
}
