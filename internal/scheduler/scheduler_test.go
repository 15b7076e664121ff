package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/linkforge/linkforge/internal/activity"
	"github.com/linkforge/linkforge/internal/catalog"
	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/logger"
	"github.com/linkforge/linkforge/internal/quota"
)

// fakeGateway implements store.Gateway in memory for tests.
type fakeGateway struct {
	mu         sync.Mutex
	links      []*domain.PublishedLink
	activities []*domain.ActivityEvent
	metrics    map[string]domain.CampaignMetrics

	baseCount  int // pre-existing recent links per user
	premium    bool
	insertErr  error
	countErr   error
	premiumErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{metrics: make(map[string]domain.CampaignMetrics)}
}

func (f *fakeGateway) InsertPublishedLink(_ context.Context, link *domain.PublishedLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.links = append(f.links, link)
	return nil
}

func (f *fakeGateway) UpdateCampaignMetrics(_ context.Context, campaignID string, m domain.CampaignMetrics) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metrics[campaignID] = m
	return nil
}

func (f *fakeGateway) AppendActivityLog(_ context.Context, event *domain.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, event)
	return nil
}

func (f *fakeGateway) CountRecentLinksForUser(_ context.Context, userID string, _ time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	count := f.baseCount
	for _, l := range f.links {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeGateway) GetUserPremiumStatus(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.premium, f.premiumErr
}

func (f *fakeGateway) linkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.links)
}

func (f *fakeGateway) activityByKind(kind string) []*domain.ActivityEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.ActivityEvent
	for _, e := range f.activities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// fixedModel is a deterministic outcome model.
type fixedModel struct {
	succeed bool
}

func (m fixedModel) Attempt(platform domain.Platform, c *domain.Campaign) (*domain.PublishedLink, bool) {
	if !m.succeed {
		return nil, false
	}
	return &domain.PublishedLink{
		ID:          "link-" + c.ID,
		CampaignID:  c.ID,
		UserID:      c.UserID,
		SourceURL:   "https://" + platform.BaseURL + "/abcdef123456",
		TargetURL:   c.TargetURL,
		AnchorText:  "anchor",
		Platform:    platform.Name,
		Authority:   platform.Authority,
		Status:      domain.LinkStatusLive,
		PublishedAt: time.Now(),
		HTTPStatus:  200,
	}, true
}

type captureEmitter struct {
	mu     sync.Mutex
	events []domain.LinkEvent
}

func (c *captureEmitter) Emit(_ context.Context, e domain.LinkEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *captureEmitter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func testCampaign(id string) *domain.Campaign {
	return &domain.Campaign{
		ID:          id,
		UserID:      "user-" + id,
		TargetURL:   "https://shop.example.com",
		AnchorTexts: []string{"buy widgets"},
	}
}

type testEnv struct {
	gateway  *fakeGateway
	emitter  *captureEmitter
	registry *Registry
}

func newTestEnv(model fixedModel, interval time.Duration) *testEnv {
	gw := newFakeGateway()
	emitter := &captureEmitter{}
	log := logger.Nop()
	reporter := activity.NewReporter(gw, emitter, log)
	enforcer := quota.New(gw, log, 20, 30*24*time.Hour, 5)

	return &testEnv{
		gateway: gw,
		emitter: emitter,
		registry: NewRegistry(
			catalog.Default(), model, enforcer, gw, reporter, log, interval, 0,
		),
	}
}
