package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/auth"
	"tableflip.dev/navigation/pkg/profile"
)

type staticFactory struct{}

func (staticFactory) MakeInspector() auth.Inspector {
	return auth.InspectorFunc(func(login, password string) bool {
		return login == "admin" && password == "12345"
	})
}

func newService(t *testing.T, mode profile.Mode) *Service {
	t.Helper()
	svc := NewService(&app.Service{Mode: mode, Inspectors: staticFactory{}})
	t.Cleanup(svc.Close)
	return svc
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoadProfileDebug(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	dto, err := svc.LoadProfile(testContext(t), "admin")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if dto.State != "loaded" || dto.User == nil {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if dto.User.FullName != "Тестовый Пользователь (admin)" {
		t.Fatalf("full name = %q", dto.User.FullName)
	}
	if dto.Sections != 2 || len(dto.Rows) != 2 || dto.Rows[0] != 1 || dto.Rows[1] != len(dto.Posts) {
		t.Fatalf("rows = %v, posts = %d", dto.Rows, len(dto.Posts))
	}
	if dto.Session == "" {
		t.Fatal("session id missing")
	}
}

func TestSessionsAreSharedPerLogin(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	ctx := testContext(t)
	first, err := svc.LoadProfile(ctx, "admin")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	second, err := svc.Profile(ctx, "ADMIN")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if first.Session != second.Session {
		t.Fatalf("sessions differ: %s vs %s", first.Session, second.Session)
	}
}

func TestLoadProfileUnknownRelease(t *testing.T) {
	svc := newService(t, profile.ModeRelease)
	dto, err := svc.LoadProfile(testContext(t), "ghost")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if dto.State != "error" || dto.Message != profile.MessageUserNotFound {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if dto.Rows[1] != 0 {
		t.Fatalf("posts rows = %d, want 0", dto.Rows[1])
	}
	if _, err := svc.GetPost(testContext(t), "ghost", 0); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("GetPost on error state = %v", err)
	}
}

func TestGetPostLoadsOnDemand(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	ctx := testContext(t)
	post, err := svc.GetPost(ctx, "admin", 0)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	want := profile.SeedPosts()[0]
	if post.Author != want.Author || post.Section != 1 || post.Row != 0 {
		t.Fatalf("post = %+v", post)
	}
	if _, err := svc.GetPost(ctx, "admin", 99); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("GetPost out of range = %v", err)
	}
	if _, err := svc.GetPost(ctx, "admin", -1); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("GetPost negative row = %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	ctx := testContext(t)
	dto, err := svc.UpdateStatus(ctx, "admin", "  Занят ", false)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dto.User.Status != "Занят" {
		t.Fatalf("status = %q", dto.User.Status)
	}
	if dto.DebugInfo != profile.ModeDebug.DebugInfo() || len(dto.Posts) != len(profile.SeedPosts()) {
		t.Fatalf("status change lost data: %+v", dto)
	}
	if _, err := svc.UpdateStatus(ctx, "admin", "x", true); err == nil {
		t.Fatal("persisting without a directory should fail")
	}
}

func TestLoginRequired(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	if _, err := svc.LoadProfile(testContext(t), "  "); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("LoadProfile blank = %v", err)
	}
}

func TestCheckLogin(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	if got := svc.CheckLogin("admin", "12345"); !got.OK {
		t.Fatalf("valid pair rejected: %+v", got)
	}
	if got := svc.CheckLogin("", "12345"); got.OK || got.Message != "Введите логин" {
		t.Fatalf("empty login: %+v", got)
	}
	if got := svc.CheckLogin("admin", "nope"); got.OK || got.Message != "Неверный логин или пароль" {
		t.Fatalf("wrong password: %+v", got)
	}
}

func TestGuess(t *testing.T) {
	svc := newService(t, profile.ModeDebug)
	if res := svc.Guess("kotlin"); res.Correct || res.Message != "Неверно. Попыток: 1" {
		t.Fatalf("wrong guess: %+v", res)
	}
	if res := svc.Guess(" swift "); !res.Correct {
		t.Fatalf("right guess: %+v", res)
	}
}

func TestTemplateArg(t *testing.T) {
	if got := templateArg([]string{"admin"}); got != "admin" {
		t.Fatalf("slice arg = %q", got)
	}
	if got := templateArg("admin"); got != "admin" {
		t.Fatalf("string arg = %q", got)
	}
	if got := templateArg(nil); got != "" {
		t.Fatalf("nil arg = %q", got)
	}
}
