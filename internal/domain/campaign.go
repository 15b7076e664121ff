package domain

import (
	"math"
	"time"
)

// Campaign represents one unit of repeated link-publishing work.
//
// A Campaign is created by the surrounding application before the
// scheduler is asked to run it. While its worker is active, the worker
// is the only writer of the Metrics block (single-writer invariant);
// the identity fields are never mutated by this subsystem.
type Campaign struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque campaign identifier.
	ID string

	// UserID is the owning user. Quota is enforced per user,
	// across all of their campaigns.
	UserID string

	// TargetURL is the page every published link points at.
	TargetURL string

	// Keywords drive anchor-text selection when no explicit
	// anchor texts are configured.
	Keywords []string

	// AnchorTexts are the preferred anchor texts for published links.
	AnchorTexts []string

	// Premium marks the owner as a premium account.
	// Premium campaigns are never stopped by the quota gate.
	Premium bool

	// ─────────────────────────────
	// Aggregates (worker-owned)
	// ─────────────────────────────

	// Metrics holds the campaign aggregates, recomputed and persisted
	// after every successful publication.
	Metrics CampaignMetrics
}

// CampaignMetrics are the aggregate fields recomputed on each
// successful publication.
type CampaignMetrics struct {
	LinksGenerated int
	LinksLive      int
	AvgAuthority   float64
	SuccessRate    float64 // live / generated, in [0,1]
	Velocity       int     // total generated, same-interval proxy
	Efficiency     float64 // bounded blend of success rate and authority, in [0,100]
	LastActivity   time.Time
}

// Apply folds one newly published link into the aggregates.
// AvgAuthority is maintained as a running mean so no link history
// has to be kept in memory.
func (m *CampaignMetrics) Apply(link *PublishedLink) {
	total := m.LinksGenerated + 1
	m.AvgAuthority = (m.AvgAuthority*float64(m.LinksGenerated) + float64(link.Authority)) / float64(total)
	m.LinksGenerated = total
	if link.Status == LinkStatusLive {
		m.LinksLive++
	}
	m.SuccessRate = float64(m.LinksLive) / float64(total)
	m.Velocity = total
	m.Efficiency = clamp(m.SuccessRate*70+math.Min(m.AvgAuthority, 100)/100*30, 0, 100)
	m.LastActivity = link.PublishedAt
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
