// Package network fetches one of the Star Wars API resources and summarises
// the response.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"unicode/utf8"
)

// PreviewChars is how many characters of the body Fetch keeps.
const PreviewChars = 500

// ErrInvalidURL is returned when a Resource does not hold an absolute URL.
var ErrInvalidURL = errors.New("network: invalid url")

// Kind is the category of a Resource.
type Kind int

const (
	People Kind = iota
	Starships
	Planets
)

// Resource is a request configuration: a kind and the URL to GET.
type Resource struct {
	Kind Kind
	URL  string
}

// Resources are the fixed configurations, one per kind.
func Resources() []Resource {
	return []Resource{
		{Kind: People, URL: "https://swapi.dev/api/people/8"},
		{Kind: Starships, URL: "https://swapi.dev/api/starships/3"},
		{Kind: Planets, URL: "https://swapi.dev/api/planets/5"},
	}
}

// Random picks one of Resources. A nil r uses the global source.
func Random(r *rand.Rand) Resource {
	all := Resources()
	if r == nil {
		return all[rand.Intn(len(all))]
	}
	return all[r.Intn(len(all))]
}

// ParseKind accepts the plural kind names used on the command line.
func ParseKind(s string) (Resource, error) {
	for _, r := range Resources() {
		if r.Kind.String() == s {
			return r, nil
		}
	}
	return Resource{}, fmt.Errorf("network: unknown resource %q", s)
}

func (k Kind) String() string {
	switch k {
	case People:
		return "people"
	case Starships:
		return "starships"
	case Planets:
		return "planets"
	default:
		return "unknown"
	}
}

// Description is the human label including the URL.
func (r Resource) Description() string {
	switch r.Kind {
	case People:
		return fmt.Sprintf("Люди (%s)", r.URL)
	case Starships:
		return fmt.Sprintf("Звездолеты (%s)", r.URL)
	case Planets:
		return fmt.Sprintf("Планеты (%s)", r.URL)
	default:
		return r.URL
	}
}

// Title heads the success report.
func (r Resource) Title() string {
	switch r.Kind {
	case People:
		return "Данные о персонаже"
	case Starships:
		return "Данные о звездолете"
	case Planets:
		return "Данные о планете"
	default:
		return "Данные"
	}
}

// Response summarises what came back.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Status     string      `json:"status"`
	Header     http.Header `json:"header"`
	Size       int         `json:"size"`
	// UTF8 is false when the body is not valid UTF-8; Preview is then empty.
	UTF8       bool   `json:"utf8"`
	Preview    string `json:"preview"`
	TotalChars int    `json:"totalChars"`
	Truncated  bool   `json:"truncated"`
}

// Fetch performs a single GET of res.URL. Non-2xx statuses are returned
// as a Response, not an error. A nil client uses http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, res Resource) (*Response, error) {
	u, err := url.Parse(res.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, res.URL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("network: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network: get %s: %w", res.URL, err)
	}
	defer resp.Body.Close()

	sc := &bodyScanner{valid: true}
	if _, err := io.Copy(sc, resp.Body); err != nil {
		return nil, fmt.Errorf("network: read body: %w", err)
	}
	sc.finish()

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Size:       sc.size,
		UTF8:       sc.valid,
	}
	if out.UTF8 {
		out.TotalChars = sc.runes
		out.Preview = string(sc.preview)
		out.Truncated = sc.runes > PreviewChars
	}
	return out, nil
}

// bodyScanner counts a body as it streams past, keeping only the first
// PreviewChars runes. A rune split across writes is carried to the next one.
type bodyScanner struct {
	size    int
	runes   int
	valid   bool
	preview []byte
	carry   []byte
}

func (s *bodyScanner) Write(p []byte) (int, error) {
	s.size += len(p)
	if !s.valid {
		return len(p), nil
	}
	buf := p
	if len(s.carry) > 0 {
		buf = append(s.carry, p...)
	}
	i := 0
	for i < len(buf) && utf8.FullRune(buf[i:]) {
		r, n := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && n == 1 {
			s.invalidate()
			return len(p), nil
		}
		if s.runes < PreviewChars {
			s.preview = append(s.preview, buf[i:i+n]...)
		}
		s.runes++
		i += n
	}
	s.carry = append([]byte(nil), buf[i:]...)
	return len(p), nil
}

// finish treats a rune left incomplete at EOF as invalid UTF-8.
func (s *bodyScanner) finish() {
	if s.valid && len(s.carry) > 0 {
		s.invalidate()
	}
}

func (s *bodyScanner) invalidate() {
	s.valid = false
	s.preview = nil
	s.carry = nil
}
