// Package feed is the word-guessing game on the feed tab.
package feed

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// SecretWord is the word players try to guess.
const SecretWord = "Swift"

// ErrEmptyWord is returned for blank guesses; they do not count as attempts.
var ErrEmptyWord = errors.New("feed: empty word")

// Result describes one checked guess.
type Result struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}

// Game tracks attempts against SecretWord. The zero value is ready to use.
type Game struct {
	mu       sync.Mutex
	attempts int
}

// Check compares word with the secret, ignoring case and surrounding space.
func (g *Game) Check(word string) (Result, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Result{Message: "Введите слово"}, ErrEmptyWord
	}

	g.mu.Lock()
	g.attempts++
	attempts := g.attempts
	g.mu.Unlock()

	if strings.EqualFold(word, SecretWord) {
		return Result{Correct: true, Message: "Правильно! Загаданное слово: " + SecretWord}, nil
	}
	return Result{Message: fmt.Sprintf("Неверно. Попыток: %d", attempts)}, nil
}

// Attempts is the number of non-empty guesses since the last Reset.
func (g *Game) Attempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts
}

// Reset starts a new game.
func (g *Game) Reset() {
	g.mu.Lock()
	g.attempts = 0
	g.mu.Unlock()
}
