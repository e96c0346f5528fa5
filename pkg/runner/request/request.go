// Package request fetches one of the SWAPI resources and prints the reply.
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"github.com/fatih/color"

	"tableflip.dev/navigation/pkg/network"
	"tableflip.dev/navigation/pkg/printers"
)

// Request performs a single GET.
type Request struct {
	// Kind is people, starships or planets. Empty picks one at random.
	Kind   string
	// URL replaces the resource's fixed address.
	URL    string
	Client *http.Client
	Rand   *rand.Rand
	JSON   bool
	Out    io.Writer
}

// Do fetches and prints.
func (r *Request) Do(ctx context.Context) error {
	res, err := r.resource()
	if err != nil {
		return err
	}
	if r.URL != "" {
		res.URL = r.URL
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}

	resp, err := network.Fetch(ctx, r.Client, res)
	if err != nil {
		return err
	}
	if r.JSON {
		b, err := json.MarshalIndent(struct {
			Kind     string            `json:"kind"`
			URL      string            `json:"url"`
			Response *network.Response `json:"response"`
		}{Kind: res.Kind.String(), URL: res.URL, Response: resp}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	pp := printers.PrettyPrint{Out: out, Width: 80}
	pp.Response(res, resp)
	return nil
}

func (r *Request) resource() (network.Resource, error) {
	if r.Kind != "" {
		return network.ParseKind(r.Kind)
	}
	return network.Random(r.Rand), nil
}
