package network

import (
	"testing"
	"time"
)

func TestHostLimiter_EvictsIdleHosts(t *testing.T) {
	l := newHostLimiter(1, 1, time.Minute)
	start := time.Unix(1_700_000_000, 0)

	if !l.allow("10.0.0.1", start) || !l.allow("10.0.0.2", start) {
		t.Fatal("first request per host refused")
	}
	if l.allow("10.0.0.1", start) {
		t.Fatal("burst of one allowed a second request")
	}
	if n := l.tracked(); n != 2 {
		t.Fatalf("tracking %d hosts", n)
	}

	// 10.0.0.2 keeps calling; 10.0.0.1 goes quiet past the idle window.
	if !l.allow("10.0.0.2", start.Add(30*time.Second)) {
		t.Fatal("refill not honoured")
	}
	l.allow("10.0.0.2", start.Add(61*time.Second))
	if n := l.tracked(); n != 1 {
		t.Fatalf("idle host kept: tracking %d", n)
	}

	// An evicted host starts again with a full bucket.
	if !l.allow("10.0.0.1", start.Add(62*time.Second)) {
		t.Fatal("evicted host refused")
	}
}

func TestHostLimiter_DefaultsAndDisabled(t *testing.T) {
	if l := newHostLimiter(0, 5, 0); l != nil || !l.allow("h", time.Now()) {
		t.Fatal("zero rate must disable limiting")
	}
	if l := newHostLimiter(1, 1, 0); l.idle != defaultLimiterIdle {
		t.Fatalf("idle %v", l.idle)
	}
}
