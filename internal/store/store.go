package store

import (
	"context"
	"time"

	"github.com/linkforge/linkforge/internal/domain"
)

// Gateway is the narrow persistence contract the scheduler consumes.
// The core never owns the storage; implementations live in the
// redis and postgres subpackages.
type Gateway interface {
	// InsertPublishedLink stores one newly published link.
	InsertPublishedLink(ctx context.Context, link *domain.PublishedLink) error

	// UpdateCampaignMetrics persists the campaign aggregates.
	UpdateCampaignMetrics(ctx context.Context, campaignID string, metrics domain.CampaignMetrics) error

	// AppendActivityLog appends one activity entry. Best-effort:
	// callers swallow the error after logging it.
	AppendActivityLog(ctx context.Context, event *domain.ActivityEvent) error

	// CountRecentLinksForUser counts links published by the user
	// (across all their campaigns) since the given time.
	CountRecentLinksForUser(ctx context.Context, userID string, since time.Time) (int, error)

	// GetUserPremiumStatus reports whether the user has a premium
	// account. Unknown users are not premium.
	GetUserPremiumStatus(ctx context.Context, userID string) (bool, error)
}
