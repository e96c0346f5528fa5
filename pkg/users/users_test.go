package users

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/navigation/pkg/profile"
	"tableflip.dev/navigation/pkg/store"
)

type testConfig string

func (t testConfig) BasePath() string { return string(t) }

func TestTestServiceAcceptsAnyLogin(t *testing.T) {
	u, err := TestService{}.LookupUser(context.Background(), "neo")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.Login != "neo" || u.FullName != "Тестовый Пользователь (neo)" || u.Status != "Тестовый режим" {
		t.Fatalf("unexpected user %#v", u)
	}
	if _, err := (TestService{}).LookupUser(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty login err = %v", err)
	}
}

func TestCurrentServiceMatchesCaseInsensitively(t *testing.T) {
	svc := NewCurrentService(ReleaseUser())
	u, err := svc.LookupUser(context.Background(), "ADMIN")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.FullName != "Иван Иванов" || u.Status != "В сети" {
		t.Fatalf("unexpected user %#v", u)
	}
	if _, err := svc.LookupUser(context.Background(), "guest"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("guest err = %v", err)
	}
}

func TestLookupForRelease(t *testing.T) {
	p, err := store.Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if err := p.Put(profile.User{Login: "trinity", FullName: "Trinity", Status: "Follow the white rabbit"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	lookup := LookupFor(profile.ModeRelease, p)

	u, err := lookup.LookupUser(context.Background(), "Trinity")
	if err != nil {
		t.Fatalf("directory lookup: %v", err)
	}
	if u.FullName != "Trinity" {
		t.Fatalf("unexpected user %#v", u)
	}

	u, err = lookup.LookupUser(context.Background(), "admin")
	if err != nil {
		t.Fatalf("fallback lookup: %v", err)
	}
	if u.FullName != "Иван Иванов" {
		t.Fatalf("fallback user %#v", u)
	}

	if _, err := lookup.LookupUser(context.Background(), "smith"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown login err = %v", err)
	}
}

func TestLookupForDebug(t *testing.T) {
	if _, ok := LookupFor(profile.ModeDebug, nil).(TestService); !ok {
		t.Fatal("debug mode should use TestService")
	}
	if _, ok := LookupFor(profile.ModeRelease, nil).(*CurrentService); !ok {
		t.Fatal("release mode without a directory should use CurrentService")
	}
}

func TestChainStopsOnHardError(t *testing.T) {
	boom := errors.New("disk on fire")
	calls := 0
	chain := Chain(
		profile.LookupFunc(func(context.Context, string) (profile.User, error) { return profile.User{}, boom }),
		profile.LookupFunc(func(context.Context, string) (profile.User, error) {
			calls++
			return profile.User{}, nil
		}),
	)
	if _, err := chain.LookupUser(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if calls != 0 {
		t.Fatal("chain continued past a hard error")
	}
}
