package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// GetUserPremiumStatus reports whether the user is premium.
// A missing flag means the user is not premium.
func (s *Store) GetUserPremiumStatus(ctx context.Context, userID string) (bool, error) {
	val, err := s.client.Get(ctx, UserPremiumKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get premium status for user %s: %w", userID, err)
	}
	return val == "1" || val == "true", nil
}

// SetUserPremiumStatus records the premium flag for a user.
// Used by the surrounding application when accounts change plan.
func (s *Store) SetUserPremiumStatus(ctx context.Context, userID string, premium bool) error {
	val := "0"
	if premium {
		val = "1"
	}
	if err := s.client.Set(ctx, UserPremiumKey(userID), val, 0).Err(); err != nil {
		return fmt.Errorf("failed to set premium status for user %s: %w", userID, err)
	}
	return nil
}
