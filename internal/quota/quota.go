package quota

import (
	"context"
	"time"

	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/logger"
)

const (
	// DefaultMaxLinks is the publishing ceiling for non-premium users.
	DefaultMaxLinks = 20
	// DefaultWindow is the rolling period the ceiling applies to.
	DefaultWindow = 30 * 24 * time.Hour
	// DefaultFailOpenAllowance is the bounded allowance granted when
	// the store cannot be reached. Publishing availability is favored
	// over strict enforcement; see Check.
	DefaultFailOpenAllowance = 5
)

// Store is the gateway subset the enforcer needs.
type Store interface {
	CountRecentLinksForUser(ctx context.Context, userID string, since time.Time) (int, error)
	GetUserPremiumStatus(ctx context.Context, userID string) (bool, error)
}

// Enforcer computes the remaining publishing allowance for a user
// over a rolling window. Nothing is cached; every check recomputes
// from the store so quota state never has a second source of truth.
type Enforcer struct {
	store             Store
	logger            logger.Logger
	maxLinks          int
	window            time.Duration
	failOpenAllowance int
	now               func() time.Time
}

// New creates an enforcer. Zero or negative maxLinks, window or
// failOpenAllowance fall back to the defaults.
func New(store Store, log logger.Logger, maxLinks int, window time.Duration, failOpenAllowance int) *Enforcer {
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if failOpenAllowance <= 0 {
		failOpenAllowance = DefaultFailOpenAllowance
	}
	return &Enforcer{
		store:             store,
		logger:            log,
		maxLinks:          maxLinks,
		window:            window,
		failOpenAllowance: failOpenAllowance,
		now:               time.Now,
	}
}

// Check returns the user's current quota status.
//
// Premium users are always unlimited. For everyone else the links
// published inside the trailing window are counted against the
// ceiling. Store failures fail open: the user gets a bounded default
// allowance instead of being blocked, favoring availability over
// strict enforcement.
func (e *Enforcer) Check(ctx context.Context, userID string) domain.QuotaStatus {
	premium, err := e.store.GetUserPremiumStatus(ctx, userID)
	if err != nil {
		e.logger.Warn("premium lookup failed, failing open",
			logger.String("user_id", userID),
			logger.Error(err))
		return e.failOpen()
	}

	if premium {
		return domain.QuotaStatus{
			IsLimitReached: false,
			LinksPublished: 0,
			MaxLinks:       domain.QuotaUnlimited,
			RemainingLinks: domain.QuotaUnlimited,
		}
	}

	since := e.now().Add(-e.window)
	count, err := e.store.CountRecentLinksForUser(ctx, userID, since)
	if err != nil {
		e.logger.Warn("recent link count failed, failing open",
			logger.String("user_id", userID),
			logger.Error(err))
		return e.failOpen()
	}

	remaining := e.maxLinks - count
	if remaining < 0 {
		remaining = 0
	}

	return domain.QuotaStatus{
		IsLimitReached: count >= e.maxLinks,
		LinksPublished: count,
		MaxLinks:       e.maxLinks,
		RemainingLinks: remaining,
	}
}

func (e *Enforcer) failOpen() domain.QuotaStatus {
	return domain.QuotaStatus{
		IsLimitReached: false,
		LinksPublished: 0,
		MaxLinks:       e.maxLinks,
		RemainingLinks: e.failOpenAllowance,
	}
}
