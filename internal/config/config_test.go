package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SKILL_APP_ID", "LOG_LEVEL", "LOG_ENCODING", "LOG_OUTPUT", "REDIS_ADDR", "REDIS_DB",
		"TRANSCRIPT_TTL", "AI_JOKES_ENABLED", "ARK_TEMPERATURE", "ARK_MAX_TOKENS", "ARK_API_KEY", "Model"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Skill.ApplicationID != "" {
		t.Fatalf("expected empty application id, got %q", cfg.Skill.ApplicationID)
	}
	if cfg.Log.Level != "info" || cfg.Log.Encoding != "json" || cfg.Log.Output != "" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis must be disabled without REDIS_ADDR")
	}
	if cfg.Redis.TranscriptTTL != time.Hour {
		t.Fatalf("unexpected ttl: %s", cfg.Redis.TranscriptTTL)
	}
	if cfg.AI.Enabled() {
		t.Fatal("AI jokes must be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("SKILL_APP_ID", " amzn1.echo-sdk-ams.app.abc ")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TRANSCRIPT_TTL", "15m")
	t.Setenv("LOG_OUTPUT", " /var/log/babysitter.log ")
	t.Setenv("AI_JOKES_ENABLED", "true")
	t.Setenv("ARK_API_KEY", "key")
	t.Setenv("Model", "doubao")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Skill.ApplicationID != "amzn1.echo-sdk-ams.app.abc" {
		t.Fatalf("unexpected application id: %q", cfg.Skill.ApplicationID)
	}
	if cfg.Log.Output != "/var/log/babysitter.log" {
		t.Fatalf("unexpected log output: %q", cfg.Log.Output)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 2 || cfg.Redis.TranscriptTTL != 15*time.Minute {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if !cfg.AI.Enabled() {
		t.Fatal("expected AI jokes to be enabled")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"PORT":             "80 80",
		"REDIS_DB":         "first",
		"TRANSCRIPT_TTL":   "-1m",
		"AI_JOKES_ENABLED": "maybe",
		"ARK_TEMPERATURE":  "warm",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
