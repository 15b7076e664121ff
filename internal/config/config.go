package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

const (
	// StorageRedis selects the Redis persistence gateway
	StorageRedis = "redis"
	// StoragePostgres selects the PostgreSQL persistence gateway
	StoragePostgres = "postgres"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	PlatformFile string        // optional YAML override of the platform catalog
	TickInterval time.Duration // base interval between publishing ticks (default: 1m)
	TickJitter   float64       // jitter fraction applied to the interval (default: 0.2)

	QuotaMaxLinks int           // monthly ceiling for non-premium users (default: 20)
	QuotaWindow   time.Duration // rolling quota window (default: 720h)
	QuotaFailOpen int           // allowance granted when quota lookups fail (default: 5)

	StorageBackend string // "redis" | "postgres"
	PostgresURL    string // required when StorageBackend == "postgres"
	RunMigrations  bool   // apply embedded migrations at startup (postgres only)

	EventChannel string // Redis pub/sub channel for domain events

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKFORGE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKFORGE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKFORGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKFORGE_PRETTY_LOG", true),

		// Scheduler
		PlatformFile: getenv("LINKFORGE_PLATFORM_FILE", ""), // Optional, empty = built-in catalog
		TickInterval: mustDuration("LINKFORGE_TICK_INTERVAL", time.Minute),
		TickJitter:   mustFloat("LINKFORGE_TICK_JITTER", 0.2),

		// Quota
		QuotaMaxLinks: getenvInt("LINKFORGE_QUOTA_MAX_LINKS", 20),
		QuotaWindow:   mustDuration("LINKFORGE_QUOTA_WINDOW", 720*time.Hour),
		QuotaFailOpen: getenvInt("LINKFORGE_QUOTA_FAIL_OPEN", 5),

		// Storage
		StorageBackend: getenv("LINKFORGE_STORAGE_BACKEND", StorageRedis),
		PostgresURL:    getenv("LINKFORGE_POSTGRES_URL", ""),
		RunMigrations:  mustBool("LINKFORGE_RUN_MIGRATIONS", true),

		// Events
		EventChannel: getenv("LINKFORGE_EVENT_CHANNEL", "linkforge:events"),

		// Redis settings
		RedisAddr:             requireEnv("LINKFORGE_REDIS_ADDR"),
		RedisUser:             getenv("LINKFORGE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKFORGE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("LINKFORGE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LINKFORGE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LINKFORGE_REDIS_PASSWORD is required when LINKFORGE_REDIS_PASSWORD_REQUIRED=true")
	}

	if cfg.StorageBackend != StorageRedis && cfg.StorageBackend != StoragePostgres {
		panic(fmt.Sprintf("❌ FATAL: Invalid LINKFORGE_STORAGE_BACKEND %q (must be %q or %q)",
			cfg.StorageBackend, StorageRedis, StoragePostgres))
	}
	if cfg.StorageBackend == StoragePostgres && cfg.PostgresURL == "" {
		panic("❌ FATAL: LINKFORGE_POSTGRES_URL is required when LINKFORGE_STORAGE_BACKEND=postgres")
	}

	if cfg.TickJitter < 0 || cfg.TickJitter >= 1 {
		panic(fmt.Sprintf("❌ FATAL: LINKFORGE_TICK_JITTER must be in [0,1), got %v", cfg.TickJitter))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		if cfg.PostgresURL != "" {
			cfgCopy.PostgresURL = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func mustFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
