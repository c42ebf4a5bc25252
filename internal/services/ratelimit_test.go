package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRateLimiterWindow(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRateLimiter(client, "api", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !decision.Allowed {
			t.Fatalf("request %d rejected", i+1)
		}
		if decision.Remaining != 2-i {
			t.Fatalf("remaining = %d, want %d", decision.Remaining, 2-i)
		}
	}
	decision, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if decision.Allowed || decision.Remaining != 0 {
		t.Fatalf("fourth request: %+v", decision)
	}
	if decision.ResetIn <= 0 || decision.ResetIn > time.Minute {
		t.Fatalf("reset in %v", decision.ResetIn)
	}

	other, err := limiter.Allow(ctx, "10.0.0.2")
	if err != nil || !other.Allowed {
		t.Fatalf("other client limited: %+v %v", other, err)
	}

	mr.FastForward(time.Minute + time.Second)
	decision, err = limiter.Allow(ctx, "10.0.0.1")
	if err != nil || !decision.Allowed {
		t.Fatalf("window did not reset: %+v %v", decision, err)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRateLimiter(client, "auth", 1, time.Minute)
	mr.Close()
	decision, err := limiter.Allow(context.Background(), "10.0.0.1")
	if err == nil {
		t.Fatal("expected redis error")
	}
	if !decision.Allowed {
		t.Fatal("limiter should let requests through when redis is down")
	}
}

func TestRevocations(t *testing.T) {
	mr, client := newTestRedis(t)
	revocations := NewRevocations(client)
	ctx := context.Background()

	revoked, err := revocations.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("fresh token revoked=%v err=%v", revoked, err)
	}
	if err := revocations.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err = revocations.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("revoked token revoked=%v err=%v", revoked, err)
	}

	mr.FastForward(2 * time.Hour)
	revoked, err = revocations.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("entry outlived the token: revoked=%v err=%v", revoked, err)
	}
}
