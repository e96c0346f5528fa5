package feed

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/navigation/pkg/feed"
	"tableflip.dev/navigation/pkg/snake"
)

func init() {
	color.NoColor = true
}

func scripted(words ...string) Guesser {
	return GuesserFunc(func() (string, error) {
		if len(words) == 0 {
			return "", snake.ErrAborted
		}
		w := words[0]
		words = words[1:]
		return w, nil
	})
}

func TestFeedStopsOnCorrectGuess(t *testing.T) {
	var buf bytes.Buffer
	game := &feed.Game{}
	f := Feed{Game: game, Guesser: scripted("", "kotlin", "SWIFT", "never asked"), Out: &buf}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	want := "Введите слово\nНеверно. Попыток: 1\nПравильно! Загаданное слово: Swift\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
	if game.Attempts() != 2 {
		t.Fatalf("attempts = %d", game.Attempts())
	}
}

func TestFeedQuitIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	f := Feed{Guesser: scripted("java"), Out: &buf}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "Попыток: 1") {
		t.Fatalf("output = %q", buf.String())
	}
}
