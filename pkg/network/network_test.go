package network

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFetchTruncatesPreview(t *testing.T) {
	body := strings.Repeat("ж", 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := Fetch(context.Background(), srv.Client(), Resource{Kind: People, URL: srv.URL})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Size != len(body) {
		t.Fatalf("size = %d, want %d bytes", resp.Size, len(body))
	}
	if !resp.Truncated || resp.TotalChars != 600 {
		t.Fatalf("truncated=%v total=%d", resp.Truncated, resp.TotalChars)
	}
	if n := utf8.RuneCountInString(resp.Preview); n != PreviewChars {
		t.Fatalf("preview has %d chars", n)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("headers = %v", resp.Header)
	}
}

func TestFetchNonUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer srv.Close()

	resp, err := Fetch(context.Background(), nil, Resource{Kind: Planets, URL: srv.URL})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound || resp.UTF8 || resp.Preview != "" || resp.Size != 3 {
		t.Fatalf("unexpected response %#v", resp)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "/relative"} {
		if _, err := Fetch(context.Background(), nil, Resource{URL: u}); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("Fetch(%q) err = %v", u, err)
		}
	}
}

func TestDescriptionsAndTitles(t *testing.T) {
	want := map[Kind][2]string{
		People:    {"Люди (https://swapi.dev/api/people/8)", "Данные о персонаже"},
		Starships: {"Звездолеты (https://swapi.dev/api/starships/3)", "Данные о звездолете"},
		Planets:   {"Планеты (https://swapi.dev/api/planets/5)", "Данные о планете"},
	}
	for _, r := range Resources() {
		if got := r.Description(); got != want[r.Kind][0] {
			t.Errorf("%v description = %q", r.Kind, got)
		}
		if got := r.Title(); got != want[r.Kind][1] {
			t.Errorf("%v title = %q", r.Kind, got)
		}
	}
}

func TestRandomAndParseKind(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seen := map[Kind]bool{}
	for i := 0; i < 100; i++ {
		seen[Random(r).Kind] = true
	}
	if len(seen) != 3 {
		t.Fatalf("random only produced %v", seen)
	}
	if res, err := ParseKind("starships"); err != nil || res.Kind != Starships {
		t.Fatalf("ParseKind(starships) = %v, %v", res, err)
	}
	if _, err := ParseKind("droids"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestBodyScannerCarriesSplitRunes(t *testing.T) {
	body := []byte(strings.Repeat("жx", 400))
	sc := &bodyScanner{valid: true}
	// Odd-sized writes split the two-byte runes between calls.
	for len(body) > 0 {
		n := min(7, len(body))
		if _, err := sc.Write(body[:n]); err != nil {
			t.Fatalf("write: %v", err)
		}
		body = body[n:]
	}
	sc.finish()

	if !sc.valid {
		t.Fatal("valid UTF-8 reported invalid")
	}
	if sc.size != 1200 || sc.runes != 800 {
		t.Fatalf("size = %d runes = %d", sc.size, sc.runes)
	}
	if got := utf8.RuneCount(sc.preview); got != PreviewChars {
		t.Fatalf("preview keeps %d runes, want %d", got, PreviewChars)
	}
}

func TestBodyScannerIncompleteRuneAtEOF(t *testing.T) {
	sc := &bodyScanner{valid: true}
	_, _ = sc.Write([]byte("ok\xd0"))
	sc.finish()
	if sc.valid || sc.preview != nil || sc.size != 3 {
		t.Fatalf("scanner = %+v", sc)
	}
}

func TestFetchLargeBodyKeepsOnlyPreview(t *testing.T) {
	const size = 4 << 20
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", size)))
	}))
	defer srv.Close()

	resp, err := Fetch(context.Background(), srv.Client(), Resource{Kind: Starships, URL: srv.URL})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.Size != size || resp.TotalChars != size || !resp.Truncated {
		t.Fatalf("size = %d chars = %d truncated = %v", resp.Size, resp.TotalChars, resp.Truncated)
	}
	if len(resp.Preview) != PreviewChars {
		t.Fatalf("preview length = %d", len(resp.Preview))
	}
}
