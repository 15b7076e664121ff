package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/logger"
)

// Emitter delivers structured domain events to real-time consumers.
type Emitter interface {
	Emit(ctx context.Context, event domain.LinkEvent) error
}

// NopEmitter discards events. Used in tests and when no real-time
// feed is configured.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, domain.LinkEvent) error { return nil }

// Store is the gateway subset the reporter needs.
type Store interface {
	AppendActivityLog(ctx context.Context, event *domain.ActivityEvent) error
}

// Reporter is the single choke point for tick reporting: every worker
// tick outcome results in exactly one call here, which appends exactly
// one activity entry. Append and emit failures are swallowed after
// logging so a reporting outage can never halt publishing.
type Reporter struct {
	store   Store
	emitter Emitter
	logger  logger.Logger
}

// NewReporter creates a reporter
func NewReporter(store Store, emitter Emitter, log logger.Logger) *Reporter {
	return &Reporter{
		store:   store,
		emitter: emitter,
		logger:  log,
	}
}

// CampaignStarted records that a worker was registered for a campaign.
func (r *Reporter) CampaignStarted(ctx context.Context, c *domain.Campaign) {
	r.append(ctx, &domain.ActivityEvent{
		CampaignID: c.ID,
		Kind:       domain.EventCampaignStarted,
		Message:    fmt.Sprintf("Campaign publishing started for %s", c.TargetURL),
		Success:    true,
	})
}

// LinkPublished records a successful placement and emits the
// structured event for real-time subscribers.
func (r *Reporter) LinkPublished(ctx context.Context, c *domain.Campaign, link *domain.PublishedLink) {
	r.append(ctx, &domain.ActivityEvent{
		CampaignID: c.ID,
		Kind:       domain.EventLinkPublished,
		Message:    fmt.Sprintf("Published link on %s (authority %d)", link.Platform, link.Authority),
		Success:    true,
		Payload: map[string]any{
			"link_id":     link.ID,
			"platform":    link.Platform,
			"authority":   link.Authority,
			"anchor_text": link.AnchorText,
			"source_url":  link.SourceURL,
		},
	})

	if err := r.emitter.Emit(ctx, domain.NewLinkEvent(c, link)); err != nil {
		r.logger.Warn("failed to emit link event",
			logger.String("campaign_id", c.ID),
			logger.String("link_id", link.ID),
			logger.Error(err))
	}
}

// AttemptFailed records a simulated non-placement. Frequent and
// expected; not an error.
func (r *Reporter) AttemptFailed(ctx context.Context, c *domain.Campaign, platform domain.Platform) {
	r.append(ctx, &domain.ActivityEvent{
		CampaignID: c.ID,
		Kind:       domain.EventOpportunityFound,
		Message:    fmt.Sprintf("Placement on %s did not land, retrying next cycle", platform.Name),
		Success:    false,
	})
}

// PublishFailed records a persistence failure for an otherwise
// successful attempt. The worker keeps running.
func (r *Reporter) PublishFailed(ctx context.Context, c *domain.Campaign, link *domain.PublishedLink, cause error) {
	r.append(ctx, &domain.ActivityEvent{
		CampaignID: c.ID,
		Kind:       domain.EventLinkPublished,
		Message:    fmt.Sprintf("Failed to save link for %s: %v", link.Platform, cause),
		Success:    false,
	})
}

// LimitReached records quota exhaustion, the one condition surfaced
// to the user as actionable.
func (r *Reporter) LimitReached(ctx context.Context, c *domain.Campaign, status domain.QuotaStatus) {
	r.append(ctx, &domain.ActivityEvent{
		CampaignID: c.ID,
		Kind:       domain.EventPremiumLimitReached,
		Message: fmt.Sprintf("Monthly link limit reached (%d/%d). Upgrade to premium for unlimited publishing.",
			status.LinksPublished, status.MaxLinks),
		Success: false,
		Payload: map[string]any{
			"links_published": status.LinksPublished,
			"max_links":       status.MaxLinks,
		},
	})
}

func (r *Reporter) append(ctx context.Context, event *domain.ActivityEvent) {
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()

	if err := r.store.AppendActivityLog(ctx, event); err != nil {
		r.logger.Error("failed to append activity log",
			logger.String("campaign_id", event.CampaignID),
			logger.String("kind", event.Kind),
			logger.Error(err))
	}
}
