package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkforge/linkforge/internal/domain"
)

// InsertPublishedLink stores a link record and indexes it on the
// owning user's timeline so quota checks can count it.
func (s *Store) InsertPublishedLink(ctx context.Context, link *domain.PublishedLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, LinkKey(link.ID), data, DefaultLinkTTL)
	pipe.ZAdd(ctx, UserLinksKey(link.UserID), redis.Z{
		Score:  float64(link.PublishedAt.Unix()),
		Member: link.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	return nil
}

// GetPublishedLink retrieves a link by ID
func (s *Store) GetPublishedLink(ctx context.Context, id string) (*domain.PublishedLink, error) {
	data, err := s.client.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get link %s: %w", id, err)
	}

	var link domain.PublishedLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}

	return &link, nil
}

// CountRecentLinksForUser counts the user's links published since the
// given time, using the score range of the timeline sorted set.
func (s *Store) CountRecentLinksForUser(ctx context.Context, userID string, since time.Time) (int, error) {
	min := fmt.Sprintf("%d", since.Unix())
	count, err := s.client.ZCount(ctx, UserLinksKey(userID), min, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count recent links for user %s: %w", userID, err)
	}
	return int(count), nil
}
