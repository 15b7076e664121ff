package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLinkTTL bounds how long individual link records are kept.
	// The quota window is 30 days, so 60 days leaves ample slack for
	// dashboards while keeping the keyspace from growing forever.
	DefaultLinkTTL = 60 * 24 * time.Hour

	// MaxActivityEntries caps each campaign's activity list.
	MaxActivityEntries = 500
)

// Store implements the persistence gateway on top of Redis
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
