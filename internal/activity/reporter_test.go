package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/logger"
)

type captureStore struct {
	events []*domain.ActivityEvent
	err    error
}

func (c *captureStore) AppendActivityLog(_ context.Context, e *domain.ActivityEvent) error {
	c.events = append(c.events, e)
	return c.err
}

type captureEmitter struct {
	events []domain.LinkEvent
	err    error
}

func (c *captureEmitter) Emit(_ context.Context, e domain.LinkEvent) error {
	c.events = append(c.events, e)
	return c.err
}

func testCampaign() *domain.Campaign {
	return &domain.Campaign{ID: "camp-1", UserID: "user-1", TargetURL: "https://t.example.com"}
}

func testLink() *domain.PublishedLink {
	return &domain.PublishedLink{
		ID:         "link-1",
		CampaignID: "camp-1",
		UserID:     "user-1",
		Platform:   "Medium",
		Authority:  93,
		AnchorText: "buy widgets",
		SourceURL:  "https://medium.com/abc",
		TargetURL:  "https://t.example.com",
	}
}

func TestLinkPublishedAppendsOneEventAndEmits(t *testing.T) {
	store := &captureStore{}
	emitter := &captureEmitter{}
	r := NewReporter(store, emitter, logger.Nop())

	r.LinkPublished(context.Background(), testCampaign(), testLink())

	if len(store.events) != 1 {
		t.Fatalf("expected exactly 1 activity event, got %d", len(store.events))
	}
	event := store.events[0]
	if event.Kind != domain.EventLinkPublished || !event.Success {
		t.Errorf("unexpected event: kind=%s success=%v", event.Kind, event.Success)
	}
	if event.CampaignID != "camp-1" {
		t.Errorf("expected campaign id camp-1, got %s", event.CampaignID)
	}
	if event.ID == "" || event.Timestamp.IsZero() {
		t.Error("expected generated id and timestamp")
	}

	if len(emitter.events) != 1 {
		t.Fatalf("expected exactly 1 domain event, got %d", len(emitter.events))
	}
	emitted := emitter.events[0]
	if emitted.EventType != domain.EventLinkPublished {
		t.Errorf("unexpected event type %s", emitted.EventType)
	}
	if emitted.CampaignID != "camp-1" || emitted.UserID != "user-1" {
		t.Errorf("unexpected ownership %s/%s", emitted.CampaignID, emitted.UserID)
	}
	if emitted.Data.LinkID != "link-1" || emitted.Data.DomainAuthority != 93 {
		t.Errorf("unexpected payload %+v", emitted.Data)
	}
}

func TestFailureOutcomesAppendOneNonSuccessEvent(t *testing.T) {
	tests := []struct {
		name   string
		report func(r *Reporter)
		kind   string
	}{
		{
			name: "attempt failed",
			report: func(r *Reporter) {
				r.AttemptFailed(context.Background(), testCampaign(), domain.Platform{Name: "Medium"})
			},
			kind: domain.EventOpportunityFound,
		},
		{
			name: "publish failed",
			report: func(r *Reporter) {
				r.PublishFailed(context.Background(), testCampaign(), testLink(), errors.New("boom"))
			},
			kind: domain.EventLinkPublished,
		},
		{
			name: "limit reached",
			report: func(r *Reporter) {
				r.LimitReached(context.Background(), testCampaign(), domain.QuotaStatus{
					IsLimitReached: true, LinksPublished: 20, MaxLinks: 20,
				})
			},
			kind: domain.EventPremiumLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &captureStore{}
			emitter := &captureEmitter{}
			r := NewReporter(store, emitter, logger.Nop())

			tt.report(r)

			if len(store.events) != 1 {
				t.Fatalf("expected exactly 1 activity event, got %d", len(store.events))
			}
			if store.events[0].Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, store.events[0].Kind)
			}
			if store.events[0].Success {
				t.Error("expected non-success event")
			}
			if len(emitter.events) != 0 {
				t.Errorf("no domain event expected, got %d", len(emitter.events))
			}
		})
	}
}

func TestAppendFailuresAreSwallowed(t *testing.T) {
	store := &captureStore{err: errors.New("redis down")}
	emitter := &captureEmitter{err: errors.New("channel down")}
	r := NewReporter(store, emitter, logger.Nop())

	// Must not panic or propagate.
	r.LinkPublished(context.Background(), testCampaign(), testLink())
	r.LimitReached(context.Background(), testCampaign(), domain.QuotaStatus{})
}
