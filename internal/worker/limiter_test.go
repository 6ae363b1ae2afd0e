package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("nli") {
			t.Fatalf("call %d within burst must be allowed", i)
		}
	}
	if l.Allow("nli") {
		t.Error("call past the burst must be throttled")
	}
}

func TestLimiter_CapabilitiesAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("nli") {
		t.Fatal("first nli call must be allowed")
	}
	if l.Allow("nli") {
		t.Error("second nli call must be throttled")
	}
	// The embed budget is untouched by nli traffic.
	if !l.Allow("embed") {
		t.Error("embed capability must have its own budget")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetRate("nli", 100, 10)

	for i := 0; i < 10; i++ {
		if !l.Allow("nli") {
			t.Fatalf("call %d within custom burst must be allowed", i)
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	if err := l.Wait(context.Background(), "nli"); err != nil {
		t.Fatalf("first wait must clear immediately: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "nli"); err == nil {
		t.Error("wait must fail when the context expires before the limit clears")
	}
}

func TestLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)

	// Defaults: 2 rps, burst 5.
	for i := 0; i < 5; i++ {
		if !l.Allow("nli") {
			t.Fatalf("call %d within default burst must be allowed", i)
		}
	}
	if l.Allow("nli") {
		t.Error("call past the default burst must be throttled")
	}
}
