package profile

import (
	"fmt"
	"strings"
)

// Mode selects which flavour of the app the caller is running. It replaces
// a compile-time build switch: callers pick it when building the Config.
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// ParseMode accepts "debug" or "release" in any case. Empty means debug.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeDebug):
		return ModeDebug, nil
	case string(ModeRelease):
		return ModeRelease, nil
	default:
		return "", fmt.Errorf("profile: unknown mode %q (expected debug or release)", s)
	}
}

// IsDebug reports whether m is the debug flavour. The zero Mode counts as debug.
func (m Mode) IsDebug() bool {
	return m != ModeRelease
}

// DebugInfo is the banner attached to every Loaded state.
func (m Mode) DebugInfo() string {
	if m.IsDebug() {
		return "Debug сборка - Тестовый пользователь"
	}
	return "Release сборка - Продакшен пользователь"
}

func (m Mode) String() string {
	if m.IsDebug() {
		return string(ModeDebug)
	}
	return string(ModeRelease)
}
