package cache

import (
	"context"
	"testing"
	"time"

	"career-sync/internal/config"

	"github.com/rs/zerolog"
)

func TestRedis_BypassWhenDisabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{Disabled: true}, zerolog.Nop())
	assertBypass(t, r)
}

func TestRedis_BypassWhenUnreachable(t *testing.T) {
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: "1"}, zerolog.Nop())
	assertBypass(t, r)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	assertBypass(t, r)
}

func assertBypass(t *testing.T, r *Redis) {
	t.Helper()
	ctx := context.Background()

	if r.Available() {
		t.Fatalf("expected unavailable cache")
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}

	var out map[string]any
	hit, err := r.GetJSON(ctx, "model:status", &out)
	if err != nil || hit {
		t.Fatalf("GetJSON = (%v, %v), want miss", hit, err)
	}
	if err := r.SetJSON(ctx, "model:status", map[string]int{"samples": 1}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	ok, err := r.SetIfNotExists(ctx, "model:retrain:lock", "token", time.Minute)
	if err != nil || ok {
		t.Fatalf("SetIfNotExists = (%v, %v), want (false, nil)", ok, err)
	}
	released, err := r.ReleaseIfValue(ctx, "model:retrain:lock", "token")
	if err != nil || released {
		t.Fatalf("ReleaseIfValue = (%v, %v), want (false, nil)", released, err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
