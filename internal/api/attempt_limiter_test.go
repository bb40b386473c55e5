package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterBlocksAtLimit(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < recoveryAttemptLimit; attempt++ {
		if !limiter.allow("1.2.3.4:/api/auth/verify-otp", now, recoveryAttemptLimit, recoveryAttemptWindow) {
			t.Fatalf("attempt %d should be allowed", attempt+1)
		}
		now = now.Add(time.Second)
	}

	if limiter.allow("1.2.3.4:/api/auth/verify-otp", now, recoveryAttemptLimit, recoveryAttemptWindow) {
		t.Fatal("attempt past the limit should be blocked")
	}
}

func TestAttemptLimiterWindowExpires(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < recoveryAttemptLimit; attempt++ {
		limiter.allow("key", now, recoveryAttemptLimit, recoveryAttemptWindow)
	}
	if limiter.allow("key", now, recoveryAttemptLimit, recoveryAttemptWindow) {
		t.Fatal("expected block inside the window")
	}

	later := now.Add(recoveryAttemptWindow + time.Second)
	if !limiter.allow("key", later, recoveryAttemptLimit, recoveryAttemptWindow) {
		t.Fatal("expected allowance after the window slides past")
	}
}

func TestAttemptLimiterKeysAreIndependent(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < recoveryAttemptLimit; attempt++ {
		limiter.allow("first", now, recoveryAttemptLimit, recoveryAttemptWindow)
	}
	if limiter.allow("first", now, recoveryAttemptLimit, recoveryAttemptWindow) {
		t.Fatal("expected first key to be blocked")
	}
	if !limiter.allow("second", now, recoveryAttemptLimit, recoveryAttemptWindow) {
		t.Fatal("expected second key to be unaffected")
	}
}

func TestAttemptLimiterReset(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < recoveryAttemptLimit; attempt++ {
		limiter.allow("key", now, recoveryAttemptLimit, recoveryAttemptWindow)
	}
	limiter.reset("key")
	if !limiter.allow("key", now, recoveryAttemptLimit, recoveryAttemptWindow) {
		t.Fatal("expected reset key to be allowed again")
	}
}
