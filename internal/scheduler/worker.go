package scheduler

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/logger"
)

// Worker runs the repeating publishing task for one campaign.
//
// The worker is the single writer of its campaign's metrics. Ticks
// execute sequentially: the next tick is scheduled only after the
// previous one finished, so there is never tick overlap within a
// campaign. The worker holds no durable state of its own; all
// persistence goes through the gateway.
type Worker struct {
	campaign *domain.Campaign
	registry *Registry
	rng      *rand.Rand

	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newWorker(campaign *domain.Campaign, r *Registry) *Worker {
	return &Worker{
		campaign: campaign,
		registry: r,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Worker) start(ctx context.Context) {
	go w.run(ctx)
}

// stop cancels the worker and waits for its goroutine to finish.
func (w *Worker) stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// A Stop racing the timer must not produce writes.
			select {
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			default:
			}

			if terminal := w.tick(ctx); terminal {
				w.registry.detach(w.campaign.ID, w)
				return
			}
			timer.Reset(w.nextInterval())

		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// tick runs one publishing attempt. Returns true when the worker
// should stop for good (quota exhausted).
func (w *Worker) tick(ctx context.Context) bool {
	r := w.registry

	status := r.quota.Check(ctx, w.campaign.UserID)
	if status.IsLimitReached && !w.campaign.Premium {
		r.logger.Info("quota exhausted, stopping campaign",
			logger.String("campaign_id", w.campaign.ID),
			logger.String("user_id", w.campaign.UserID),
			logger.Int("links_published", status.LinksPublished),
			logger.Int("max_links", status.MaxLinks))
		r.reporter.LimitReached(ctx, w.campaign, status)
		return true
	}

	platform := r.catalog.Pick(w.rng)

	link, ok := r.model.Attempt(platform, w.campaign)
	if !ok {
		r.reporter.AttemptFailed(ctx, w.campaign, platform)
		return false
	}

	if err := r.gateway.InsertPublishedLink(ctx, link); err != nil {
		// A single failed write does not stop the worker, it only
		// costs this tick.
		r.logger.Error("failed to persist published link",
			logger.String("campaign_id", w.campaign.ID),
			logger.String("link_id", link.ID),
			logger.Error(err))
		r.reporter.PublishFailed(ctx, w.campaign, link, err)
		return false
	}

	w.campaign.Metrics.Apply(link)
	if err := r.gateway.UpdateCampaignMetrics(ctx, w.campaign.ID, w.campaign.Metrics); err != nil {
		r.logger.Error("failed to persist campaign metrics",
			logger.String("campaign_id", w.campaign.ID),
			logger.Error(err))
	}

	r.reporter.LinkPublished(ctx, w.campaign, link)

	r.logger.Debug("link published",
		logger.String("campaign_id", w.campaign.ID),
		logger.String("platform", link.Platform),
		logger.Int("authority", link.Authority),
		logger.Int("links_generated", w.campaign.Metrics.LinksGenerated))

	return false
}

// nextInterval returns the base interval with a random jitter applied
// so many campaigns started together don't tick in lockstep.
func (w *Worker) nextInterval() time.Duration {
	base := w.registry.interval
	if w.registry.jitter <= 0 {
		return base
	}

	delta := (w.rng.Float64()*2 - 1) * w.registry.jitter * float64(base)
	d := base + time.Duration(delta)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}
