package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.DBPath != "data/genesis.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.APIPort != 8080 {
		t.Errorf("port = %d", cfg.APIPort)
	}
	if cfg.TickInterval != 5*time.Minute {
		t.Errorf("tick interval = %s", cfg.TickInterval)
	}
	if cfg.QuestChance != 0.3 {
		t.Errorf("quest chance = %v", cfg.QuestChance)
	}
	if cfg.GatewayTimeout != 30*time.Second {
		t.Errorf("gateway timeout = %s", cfg.GatewayTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GENESIS_TICK_INTERVAL", "30s")
	t.Setenv("GENESIS_API_PORT", "9090")
	t.Setenv("GENESIS_QUEST_CHANCE", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickInterval != 30*time.Second {
		t.Errorf("tick interval = %s", cfg.TickInterval)
	}
	if cfg.APIPort != 9090 {
		t.Errorf("port = %d", cfg.APIPort)
	}
	if cfg.QuestChance != 0.75 {
		t.Errorf("quest chance = %v", cfg.QuestChance)
	}
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("GENESIS_TICK_INTERVAL", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero tick interval")
	}
}
