package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(2, 0.001) // negligible refill within the test

	if !l.Allow() || !l.Allow() {
		t.Fatal("burst capacity should allow two requests")
	}
	if l.Allow() {
		t.Error("third request should be rejected")
	}
}

func TestLimiter_Refill(t *testing.T) {
	l := New(1, 100) // fast refill for the test

	if !l.Allow() {
		t.Fatal("first request should pass")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow() {
		t.Error("request after refill should pass")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, 0.001)
	l.Allow()
	if l.Allow() {
		t.Fatal("bucket should be empty")
	}
	l.Reset()
	if !l.Allow() {
		t.Error("reset bucket should allow again")
	}
}

func TestLimiter_IsFull(t *testing.T) {
	l := New(2, 0.001)
	if !l.IsFull() {
		t.Error("fresh bucket should be full")
	}
	l.Allow()
	if l.IsFull() {
		t.Error("drained bucket should not be full")
	}
}

func TestPerKeyLimiter_IsolatesKeys(t *testing.T) {
	pkl := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer pkl.Stop()

	if !pkl.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if pkl.Allow("a") {
		t.Error("second request for a should be rejected")
	}
	if !pkl.Allow("b") {
		t.Error("key b has its own bucket")
	}
}

func TestPerKeyLimiter_EmptyKeyUnlimited(t *testing.T) {
	pkl := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer pkl.Stop()

	for i := 0; i < 5; i++ {
		if !pkl.Allow("") {
			t.Fatal("empty key must never be limited")
		}
	}
}

func TestPerKeyLimiter_OnDrop(t *testing.T) {
	pkl := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer pkl.Stop()

	drops := 0
	pkl.OnDrop(func() { drops++ })

	pkl.Allow("a")
	pkl.Allow("a")
	pkl.Allow("a")
	if drops != 2 {
		t.Errorf("drops = %d, want 2", drops)
	}
}

func TestPerKeyLimiter_ActiveCount(t *testing.T) {
	pkl := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer pkl.Stop()

	pkl.Allow("a")
	pkl.Allow("b")
	if got := pkl.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}
}
