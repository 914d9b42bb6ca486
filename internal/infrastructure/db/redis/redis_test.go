package redis

import (
	"testing"
	"time"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Addr != defaultAddr {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %v", cfg.Timeout)
	}
}

func TestConfigWithDefaults_KeepsExplicitValues(t *testing.T) {
	in := Config{Addr: "cache:6379", DB: 2, Timeout: time.Second}
	if got := in.withDefaults(); got != in {
		t.Fatalf("explicit config was altered: %+v", got)
	}
}
