package config

import (
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			defer func() {
				r := recover()
				if tt.wantPanic && r == nil {
					t.Error("expected panic, got none")
				}
				if !tt.wantPanic && r != nil {
					t.Errorf("unexpected panic: %v", r)
				}
			}()

			got := requireEnv(tt.key)
			if !tt.wantPanic && got != tt.value {
				t.Errorf("expected %q, got %q", tt.value, got)
			}
		})
	}
}

func TestHelperDefaults(t *testing.T) {
	if got := getenv("UNSET_STRING_VAR", "fallback"); got != "fallback" {
		t.Errorf("getenv default: expected fallback, got %q", got)
	}
	if got := getenvInt("UNSET_INT_VAR", 42); got != 42 {
		t.Errorf("getenvInt default: expected 42, got %d", got)
	}
	if got := mustDuration("UNSET_DURATION_VAR", 5*time.Second); got != 5*time.Second {
		t.Errorf("mustDuration default: expected 5s, got %v", got)
	}
	if got := mustBool("UNSET_BOOL_VAR", true); got != true {
		t.Errorf("mustBool default: expected true, got %v", got)
	}
	if got := mustFloat("UNSET_FLOAT_VAR", 0.2); got != 0.2 {
		t.Errorf("mustFloat default: expected 0.2, got %v", got)
	}

	t.Setenv("SET_INT_VAR", "7")
	if got := getenvInt("SET_INT_VAR", 42); got != 7 {
		t.Errorf("getenvInt: expected 7, got %d", got)
	}
	t.Setenv("SET_DURATION_VAR", "90s")
	if got := mustDuration("SET_DURATION_VAR", time.Second); got != 90*time.Second {
		t.Errorf("mustDuration: expected 90s, got %v", got)
	}
	t.Setenv("SET_FLOAT_VAR", "0.35")
	if got := mustFloat("SET_FLOAT_VAR", 0.2); got != 0.35 {
		t.Errorf("mustFloat: expected 0.35, got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LINKFORGE_REDIS_ADDR", "localhost:6379")
	t.Setenv("LINKFORGE_REDIS_PASSWORD_REQUIRED", "false")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("expected default listen port :8080, got %q", cfg.ListenPort)
	}
	if cfg.TickInterval != time.Minute {
		t.Errorf("expected default tick interval 1m, got %v", cfg.TickInterval)
	}
	if cfg.TickJitter != 0.2 {
		t.Errorf("expected default jitter 0.2, got %v", cfg.TickJitter)
	}
	if cfg.QuotaMaxLinks != 20 {
		t.Errorf("expected default quota 20, got %d", cfg.QuotaMaxLinks)
	}
	if cfg.QuotaWindow != 720*time.Hour {
		t.Errorf("expected default window 720h, got %v", cfg.QuotaWindow)
	}
	if cfg.StorageBackend != StorageRedis {
		t.Errorf("expected default backend redis, got %q", cfg.StorageBackend)
	}
	if cfg.EventChannel != "linkforge:events" {
		t.Errorf("expected default event channel, got %q", cfg.EventChannel)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("postgres backend requires url", func(t *testing.T) {
		t.Setenv("LINKFORGE_REDIS_ADDR", "localhost:6379")
		t.Setenv("LINKFORGE_REDIS_PASSWORD_REQUIRED", "false")
		t.Setenv("LINKFORGE_STORAGE_BACKEND", "postgres")

		defer func() {
			if recover() == nil {
				t.Error("expected panic for missing postgres url")
			}
		}()
		Load()
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		t.Setenv("LINKFORGE_REDIS_ADDR", "localhost:6379")
		t.Setenv("LINKFORGE_REDIS_PASSWORD_REQUIRED", "false")
		t.Setenv("LINKFORGE_STORAGE_BACKEND", "mongodb")

		defer func() {
			if recover() == nil {
				t.Error("expected panic for unknown backend")
			}
		}()
		Load()
	})

	t.Run("jitter must stay below 1", func(t *testing.T) {
		t.Setenv("LINKFORGE_REDIS_ADDR", "localhost:6379")
		t.Setenv("LINKFORGE_REDIS_PASSWORD_REQUIRED", "false")
		t.Setenv("LINKFORGE_TICK_JITTER", "1.5")

		defer func() {
			if recover() == nil {
				t.Error("expected panic for jitter >= 1")
			}
		}()
		Load()
	})
}
