package domain

import "time"

// Link status values. This subsystem only ever creates links as live;
// later transitions are performed by external verification.
const (
	LinkStatusLive = "live"
)

// PublishedLink is the record of one successful placement attempt.
// Created exactly once per successful tick, immutable afterwards.
type PublishedLink struct {
	// ID is a generated unique identifier.
	ID string

	// CampaignID is the owning campaign.
	CampaignID string

	// UserID is the owning user, denormalized from the campaign so
	// stores can count a user's recent links without a join.
	UserID string

	// SourceURL is the synthesized page the link was placed on.
	SourceURL string

	// TargetURL is copied from the campaign.
	TargetURL string

	// AnchorText is chosen from the campaign's anchor list,
	// falling back to its keywords.
	AnchorText string

	// Platform is the name of the host platform.
	Platform string

	// Authority is the platform's nominal score with a small jitter.
	Authority int

	// Status is always "live" at creation time.
	Status string

	// PublishedAt is the placement timestamp.
	PublishedAt time.Time

	// Simulated engagement and timing fields.
	Clicks         int
	LinkJuice      int
	ResponseTimeMS int
	HTTPStatus     int
}
