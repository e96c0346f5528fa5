// Package feed plays the word-guessing game on the terminal.
package feed

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/navigation/pkg/feed"
	"tableflip.dev/navigation/pkg/snake"
)

// Guesser supplies guesses. Prompt-backed guessers return snake.ErrAborted
// when the player gives up.
type Guesser interface {
	Guess() (string, error)
}

// GuesserFunc adapts a function to Guesser.
type GuesserFunc func() (string, error)

// Guess calls f.
func (f GuesserFunc) Guess() (string, error) { return f() }

// PromptGuesser asks for each guess on the terminal.
func PromptGuesser(p snake.Prompter) Guesser {
	return GuesserFunc(func() (string, error) {
		return p.Ask("Слово", 0, nil)
	})
}

// Feed loops until the secret word is guessed or the player quits.
type Feed struct {
	Game    *feed.Game
	Guesser Guesser
	Out     io.Writer
}

// Do runs the game. Quitting early is not an error.
func (f *Feed) Do(ctx context.Context) error {
	if f.Guesser == nil {
		return errors.New("can not play, no guesser")
	}
	game := f.Game
	if game == nil {
		game = &feed.Game{}
	}
	out := f.Out
	if out == nil {
		out = color.Output
	}
	good := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed)
	hint := color.New(color.Faint, color.Italic)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		word, err := f.Guesser.Guess()
		if errors.Is(err, snake.ErrAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		res, err := game.Check(word)
		switch {
		case errors.Is(err, feed.ErrEmptyWord):
			_, _ = hint.Fprintln(out, res.Message)
		case err != nil:
			return err
		case res.Correct:
			_, _ = good.Fprintln(out, res.Message)
			return nil
		default:
			_, _ = bad.Fprintln(out, res.Message)
		}
	}
}
