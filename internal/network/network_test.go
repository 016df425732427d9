package network_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/retry.v1"

	"safeapp/internal/crypto"
	"safeapp/internal/domain"
	"safeapp/internal/network"
)

var fastStrategy = retry.LimitCount(2, retry.Exponential{Initial: time.Millisecond, Factor: 1})

func newDialer() *network.HTTPDialer {
	d := network.NewHTTPDialer(nil, zerolog.Nop())
	d.Strategy = fastStrategy
	return d
}

func hello() domain.Hello {
	sk, pk, err := crypto.GenerateEd25519()
	if err != nil {
		panic(err)
	}
	return crypto.NewHello(sk, pk, "net.maidsafe.test")
}

func TestDial_PingClose(t *testing.T) {
	gw := network.NewGateway(network.GatewayOptions{})
	srv := httptest.NewServer(gw)
	defer srv.Close()

	ctx := context.Background()
	sess, err := newDialer().Dial(ctx, []string{srv.URL}, hello())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if sess.Contact() != srv.URL || sess.ID() == "" {
		t.Fatalf("unexpected session %q at %q", sess.ID(), sess.Contact())
	}
	if gw.Sessions() != 1 {
		t.Fatalf("gateway holds %d sessions", gw.Sessions())
	}
	if err := sess.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := sess.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sess.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if gw.Sessions() != 0 {
		t.Fatalf("gateway still holds %d sessions", gw.Sessions())
	}
}

func TestDial_SkipsDeadContacts(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	srv := httptest.NewServer(network.NewGateway(network.GatewayOptions{}))
	defer srv.Close()

	sess, err := newDialer().Dial(context.Background(), []string{deadURL, srv.URL}, hello())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if sess.Contact() != srv.URL {
		t.Fatalf("dialled %q", sess.Contact())
	}
}

func TestDial_Errors(t *testing.T) {
	if _, err := newDialer().Dial(context.Background(), nil, hello()); !errors.Is(err, network.ErrNoContacts) {
		t.Fatalf("got %v", err)
	}

	srv := httptest.NewServer(network.NewGateway(network.GatewayOptions{}))
	defer srv.Close()

	_, err := newDialer().Dial(context.Background(), []string{srv.URL}, domain.Hello{SignPk: "zz"})
	var se *network.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Fatalf("want 400 status error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newDialer().Dial(ctx, []string{srv.URL}, hello()); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestGateway_RejectsUnsignedHello(t *testing.T) {
	gw := network.NewGateway(network.GatewayOptions{})
	srv := httptest.NewServer(gw)
	defer srv.Close()

	forged := hello()
	forged.AppID = "net.maidsafe.other"
	unsigned := hello()
	unsigned.Sig = ""

	for name, tc := range map[string]struct {
		hello domain.Hello
		code  int
	}{
		"app id swapped": {forged, http.StatusUnauthorized},
		"no signature":   {unsigned, http.StatusBadRequest},
	} {
		_, err := newDialer().Dial(context.Background(), []string{srv.URL}, tc.hello)
		var se *network.StatusError
		if !errors.As(err, &se) || se.Code != tc.code {
			t.Fatalf("%s: want %d, got %v", name, tc.code, err)
		}
	}
	if gw.Sessions() != 0 {
		t.Fatalf("gateway opened %d sessions", gw.Sessions())
	}
}

func TestPing_SessionGoneAfterDrop(t *testing.T) {
	gw := network.NewGateway(network.GatewayOptions{})
	srv := httptest.NewServer(gw)
	defer srv.Close()

	ctx := context.Background()
	sess, err := newDialer().Dial(ctx, []string{srv.URL}, hello())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if n := gw.DropAll(); n != 1 {
		t.Fatalf("dropped %d sessions", n)
	}
	if err := sess.Ping(ctx); !errors.Is(err, network.ErrSessionGone) {
		t.Fatalf("got %v", err)
	}
}

func TestGateway_RateLimitsSessionCreation(t *testing.T) {
	gw := network.NewGateway(network.GatewayOptions{OpenRate: 0.001, OpenBurst: 1})
	srv := httptest.NewServer(gw)
	defer srv.Close()

	ctx := context.Background()
	if _, err := newDialer().Dial(ctx, []string{srv.URL}, hello()); err != nil {
		t.Fatalf("first Dial: %v", err)
	}
	_, err := newDialer().Dial(ctx, []string{srv.URL}, hello())
	var se *network.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %v", err)
	}
}

func TestGateway_ServesMetrics(t *testing.T) {
	srv := httptest.NewServer(network.NewGateway(network.GatewayOptions{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %s", resp.Status)
	}
}
