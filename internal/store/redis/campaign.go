package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/linkforge/linkforge/internal/domain"
)

// UpdateCampaignMetrics stores the campaign aggregates
func (s *Store) UpdateCampaignMetrics(ctx context.Context, campaignID string, metrics domain.CampaignMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics for campaign %s: %w", campaignID, err)
	}

	if err := s.client.Set(ctx, CampaignMetricsKey(campaignID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save metrics for campaign %s: %w", campaignID, err)
	}

	return nil
}

// GetCampaignMetrics retrieves the stored aggregates for a campaign.
// A campaign with no stored metrics yet returns the zero value.
func (s *Store) GetCampaignMetrics(ctx context.Context, campaignID string) (domain.CampaignMetrics, error) {
	var metrics domain.CampaignMetrics

	data, err := s.client.Get(ctx, CampaignMetricsKey(campaignID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return metrics, nil
		}
		return metrics, fmt.Errorf("failed to get metrics for campaign %s: %w", campaignID, err)
	}

	if err := json.Unmarshal(data, &metrics); err != nil {
		return metrics, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}

	return metrics, nil
}
