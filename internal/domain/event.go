package domain

import "time"

// ActivityEvent kinds, matching the values the dashboards consume.
const (
	EventLinkPublished        = "link_published"
	EventContentGenerated     = "content_generated"
	EventOpportunityFound     = "opportunity_found"
	EventVerificationComplete = "verification_complete"
	EventPremiumLimitReached  = "premium_limit_reached"
	EventCampaignStarted      = "campaign_started"
)

// ActivityEvent is one append-only, human-readable activity entry.
// Exactly one is recorded per worker tick, success or failure.
type ActivityEvent struct {
	ID         string
	Timestamp  time.Time
	CampaignID string
	Kind       string
	Message    string
	Success    bool
	Payload    map[string]any
}

// LinkEvent is the structured domain event emitted to real-time
// consumers on every successful publication. Field names are part of
// the wire contract with external subscribers.
type LinkEvent struct {
	EventType  string        `json:"eventType"`
	CampaignID string        `json:"campaignId"`
	UserID     string        `json:"userId"`
	Data       LinkEventData `json:"data"`
}

// LinkEventData carries the published link details.
type LinkEventData struct {
	LinkID          string `json:"linkId"`
	Platform        string `json:"platform"`
	DomainAuthority int    `json:"domainAuthority"`
	AnchorText      string `json:"anchorText"`
	SourceURL       string `json:"sourceUrl"`
	TargetURL       string `json:"targetUrl"`
}

// NewLinkEvent builds the wire event for a freshly published link.
func NewLinkEvent(c *Campaign, link *PublishedLink) LinkEvent {
	return LinkEvent{
		EventType:  EventLinkPublished,
		CampaignID: c.ID,
		UserID:     c.UserID,
		Data: LinkEventData{
			LinkID:          link.ID,
			Platform:        link.Platform,
			DomainAuthority: link.Authority,
			AnchorText:      link.AnchorText,
			SourceURL:       link.SourceURL,
			TargetURL:       link.TargetURL,
		},
	}
}
