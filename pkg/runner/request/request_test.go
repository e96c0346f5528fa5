package request

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestRequestPrintsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Mars"}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	r := Request{Kind: "planets", URL: srv.URL, Client: srv.Client(), Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"200 OK", "Content-Type", `{"name":"Mars"}`, "15 bytes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRequestJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	r := Request{Kind: "people", URL: srv.URL, Client: srv.Client(), JSON: true, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got struct {
		Kind     string `json:"kind"`
		Response struct {
			StatusCode int `json:"statusCode"`
		} `json:"response"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != "people" || got.Response.StatusCode != http.StatusNotFound {
		t.Fatalf("got %+v", got)
	}
}

func TestRequestUnknownKind(t *testing.T) {
	r := Request{Kind: "droids"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}
