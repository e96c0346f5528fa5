// Package snake asks for missing input on the terminal.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("snake: prompt aborted")

// Prompter runs prompts against In and Out. Nil streams use the terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var askTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// Ask reads one line. A non-zero mask hides the answer as it is typed.
func (p Prompter) Ask(label string, mask rune, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Mask:      mask,
		Templates: askTemplates,
		Validate:  promptui.ValidateFunc(validate),
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := prompt.Run()
	return result, wrap(err)
}

// Confirm asks a yes/no question.
func (p Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/[n]"
	if def {
		hint = "[y]/n"
	}
	answer, err := p.Ask(fmt.Sprintf("%s %s", label, hint), 0, func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := ParseBool(strings.TrimSpace(s))
		return err
	})
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(answer) == "" {
		return def, nil
	}
	return ParseBool(strings.TrimSpace(answer))
}

// Select lets the user pick one of items and returns its index.
func (p Prompter) Select(label string, items []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . | cyan }}",
		Selected: "{{ . | bold }}",
	}
	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	i, _, err := prompt.Run()
	return i, wrap(err)
}

// NotEmpty rejects blank answers with message.
func NotEmpty(message string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	}
}

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	if rc, ok := p.In.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	if wc, ok := p.Out.(io.WriteCloser); ok {
		return wc
	}
	return NopCloser(p.Out)
}

func wrap(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
