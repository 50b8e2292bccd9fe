package redis

import (
	"testing"

	"github.com/cotizaplus/cotiza-backend/pkg/config"
)

func TestOptionsFromConfig_URLWins(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://:secret@localhost:6380/2",
		Address:  "ignored:6379",
		PoolSize: 15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Errorf("expected addr from url, got %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Errorf("expected db 2, got %d", opts.DB)
	}
	if opts.Password != "secret" {
		t.Errorf("expected password from url, got %q", opts.Password)
	}
	if opts.PoolSize != 15 {
		t.Errorf("expected pool size fallback 15, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfig_DiscreteSettings(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "cache:6379",
		Password: "pw",
		DB:       1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 1 {
		t.Errorf("options not built from discrete settings: %+v", opts)
	}
}

func TestOptionsFromConfig_RequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when no url or address is set")
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.AssetKey("https://cdn.example.com/logo.png"); got != "cz:asset:https://cdn.example.com/logo.png" {
		t.Errorf("unexpected asset key %q", got)
	}
	if got := c.StatsKey("4f1c"); got != "cz:stats:4f1c" {
		t.Errorf("unexpected stats key %q", got)
	}
}
