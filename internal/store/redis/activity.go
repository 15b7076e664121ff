package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linkforge/linkforge/internal/domain"
)

// AppendActivityLog pushes one activity entry onto the campaign's
// list, keeping only the most recent MaxActivityEntries.
func (s *Store) AppendActivityLog(ctx context.Context, event *domain.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}

	key := CampaignActivityKey(event.CampaignID)

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, MaxActivityEntries-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append activity for campaign %s: %w", event.CampaignID, err)
	}

	return nil
}

// GetRecentActivity returns up to limit recent entries for a campaign,
// newest first.
func (s *Store) GetRecentActivity(ctx context.Context, campaignID string, limit int) ([]*domain.ActivityEvent, error) {
	if limit <= 0 || limit > MaxActivityEntries {
		limit = MaxActivityEntries
	}

	raw, err := s.client.LRange(ctx, CampaignActivityKey(campaignID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity for campaign %s: %w", campaignID, err)
	}

	events := make([]*domain.ActivityEvent, 0, len(raw))
	for _, item := range raw {
		var event domain.ActivityEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		events = append(events, &event)
	}

	return events, nil
}
