package load

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/profile"
)

func init() {
	color.NoColor = true
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoadPrintsLoadingThenProfile(t *testing.T) {
	var buf bytes.Buffer
	l := Load{Service: &app.Service{Mode: profile.ModeDebug}, Login: "admin", Out: &buf}
	if err := l.Do(testContext(t)); err != nil {
		t.Fatalf("Do: %v", err)
	}
	out := buf.String()
	loading := strings.Index(out, "Загрузка профиля")
	name := strings.Index(out, "Тестовый Пользователь (admin)")
	if loading < 0 || name < 0 || loading > name {
		t.Fatalf("unexpected output order:\n%s", out)
	}
}

func TestLoadAppliesStatus(t *testing.T) {
	var buf bytes.Buffer
	l := Load{Service: &app.Service{Mode: profile.ModeDebug}, Login: "admin", Status: "Занят", JSON: true, Out: &buf}
	if err := l.Do(testContext(t)); err != nil {
		t.Fatalf("Do: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want loading, loaded and updated states, got %d lines:\n%s", len(lines), buf.String())
	}
	var last jsonState
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if last.State != "loaded" || last.User == nil || last.User.Status != "Занят" {
		t.Fatalf("last state = %+v", last)
	}
}

func TestLoadUnknownUserFails(t *testing.T) {
	var buf bytes.Buffer
	l := Load{Service: &app.Service{Mode: profile.ModeRelease}, Login: "ghost", Out: &buf}
	err := l.Do(testContext(t))
	if !errors.Is(err, ErrProfileUnavailable) {
		t.Fatalf("Do = %v", err)
	}
	if !strings.Contains(buf.String(), profile.MessageUserNotFound) {
		t.Fatalf("error state not printed:\n%s", buf.String())
	}
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errDiskFull
}

func TestLoadReturnsJSONWriteError(t *testing.T) {
	w := &failingWriter{}
	l := Load{Service: &app.Service{Mode: profile.ModeDebug}, Login: "admin", JSON: true, Out: w}
	err := l.Do(testContext(t))
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Do err = %v, want the write error", err)
	}
	if w.writes != 2 {
		t.Fatalf("writes = %d, want loading and loaded", w.writes)
	}
}
