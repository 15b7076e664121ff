package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/linkforge/linkforge/internal/activity"
	"github.com/linkforge/linkforge/internal/catalog"
	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/logger"
	"github.com/linkforge/linkforge/internal/outcome"
	"github.com/linkforge/linkforge/internal/quota"
	"github.com/linkforge/linkforge/internal/store"
)

// Registry owns the set of active campaign workers and is the sole
// owner of the campaign-id -> worker map. It guarantees at most one
// active worker per campaign id, including under concurrent Start
// calls for the same id.
//
// There is deliberately no cap on the number of concurrent workers:
// the bound is the number of active campaigns.
type Registry struct {
	catalog  *catalog.Catalog
	model    outcome.Model
	quota    *quota.Enforcer
	gateway  store.Gateway
	reporter *activity.Reporter
	logger   logger.Logger

	interval time.Duration
	jitter   float64 // fraction of interval, e.g. 0.2 => ±20%

	mu      sync.Mutex
	workers map[string]*Worker
}

// NewRegistry creates a registry
func NewRegistry(
	cat *catalog.Catalog,
	model outcome.Model,
	enforcer *quota.Enforcer,
	gateway store.Gateway,
	reporter *activity.Reporter,
	log logger.Logger,
	interval time.Duration,
	jitter float64,
) *Registry {
	return &Registry{
		catalog:  cat,
		model:    model,
		quota:    enforcer,
		gateway:  gateway,
		reporter: reporter,
		logger:   log,
		interval: interval,
		jitter:   jitter,
		workers:  make(map[string]*Worker),
	}
}

// Start registers and starts a worker for the campaign. Idempotent:
// if a worker already exists for the campaign id this is a no-op.
func (r *Registry) Start(ctx context.Context, campaign *domain.Campaign) {
	if campaign == nil || campaign.ID == "" {
		r.logger.Warn("start requested without campaign id")
		return
	}

	r.mu.Lock()
	if _, exists := r.workers[campaign.ID]; exists {
		r.mu.Unlock()
		r.logger.Debug("campaign already running",
			logger.String("campaign_id", campaign.ID))
		return
	}
	w := newWorker(campaign, r)
	r.workers[campaign.ID] = w
	r.mu.Unlock()

	r.reporter.CampaignStarted(ctx, campaign)
	w.start(ctx)

	r.logger.Info("campaign worker started",
		logger.String("campaign_id", campaign.ID),
		logger.String("user_id", campaign.UserID),
		logger.Duration("interval", r.interval))
}

// Stop cancels the campaign's worker and removes it from the
// registry. It returns only after the worker goroutine has finished,
// so no tick can write state after Stop returns. Stopping an absent
// campaign is a no-op.
func (r *Registry) Stop(campaignID string) {
	r.mu.Lock()
	w, ok := r.workers[campaignID]
	if ok {
		delete(r.workers, campaignID)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	w.stop()
	r.logger.Info("campaign worker stopped",
		logger.String("campaign_id", campaignID))
}

// StopAll cancels every active worker and clears the registry.
// Used on process shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	workers := make([]*Worker, 0, len(r.workers))
	for _, w := range r.workers {
		workers = append(workers, w)
	}
	r.workers = make(map[string]*Worker)
	r.mu.Unlock()

	for _, w := range workers {
		w.stop()
	}

	if len(workers) > 0 {
		r.logger.Info("all campaign workers stopped",
			logger.Int("count", len(workers)))
	}
}

// IsActive reports whether a worker exists for the campaign id.
func (r *Registry) IsActive(campaignID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.workers[campaignID]
	return ok
}

// ActiveCount returns the number of active workers.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.workers)
}

// ActiveCampaigns returns the ids of all active campaigns.
func (r *Registry) ActiveCampaigns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.workers))
	for id := range r.workers {
		ids = append(ids, id)
	}
	return ids
}

// detach removes the worker from the registry if it is still the
// registered one. Used by a worker's terminal tick; comparing the
// instance keeps a stale worker from removing a replacement that
// was started concurrently.
func (r *Registry) detach(campaignID string, w *Worker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.workers[campaignID]; ok && current == w {
		delete(r.workers, campaignID)
	}
}
