package mcp

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/profile"
)

func TestEndpoint(t *testing.T) {
	cases := []struct {
		name     string
		runner   Runner
		addr     string
		path     string
		wantFail bool
	}{
		{name: "defaults", addr: defaultListenAddr, path: defaultPath},
		{name: "relative path", runner: Runner{HTTPListenAddr: ":9000", HTTPEndpointPath: "agents"}, addr: ":9000", path: "/agents"},
		{name: "cert without key", runner: Runner{HTTPServerCert: "cert.pem"}, wantFail: true},
		{name: "key without cert", runner: Runner{HTTPServerKey: "key.pem"}, wantFail: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, path, err := tc.runner.endpoint()
			if tc.wantFail {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("endpoint: %v", err)
			}
			if addr != tc.addr || path != tc.path {
				t.Fatalf("endpoint = %q %q, want %q %q", addr, path, tc.addr, tc.path)
			}
		})
	}
}

func TestRunnerServesHealthzUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listening := make(chan net.Addr, 1)
	done := make(chan error, 1)
	r := Runner{
		Service:         &app.Service{Mode: profile.ModeDebug},
		Transport:       TransportHTTP,
		HTTPListenAddr:  "127.0.0.1:0",
		OnHTTPListening: func(a net.Addr) { listening <- a },
	}
	go func() { done <- r.Do(ctx) }()

	var addr net.Addr
	select {
	case addr = <-listening:
	case err := <-done:
		t.Fatalf("Do returned early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}

	res, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", res.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do after cancel: %v", err)
		}
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("server did not stop")
	}
}

func TestUnknownTransport(t *testing.T) {
	r := Runner{Service: &app.Service{}, Transport: "carrier-pigeon"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown transport")
	}
}
