package outcome

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linkforge/linkforge/internal/domain"
)

// Model decides the outcome of one placement attempt.
// Implementations may replace the simulated roll with a real
// HTTP-based placement without changing any caller.
type Model interface {
	// Attempt returns the published link and true on success,
	// or nil and false when the placement did not happen.
	Attempt(platform domain.Platform, campaign *domain.Campaign) (*domain.PublishedLink, bool)
}

const (
	tokenLength     = 12
	authorityJitter = 2

	// defaultAnchor is used when a campaign has neither anchor
	// texts nor keywords configured.
	defaultAnchor = "click here"

	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Simulated is the default Model: a uniform draw against the
// platform's success probability, with synthesized link details.
// Safe for concurrent use by multiple workers.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a time-seeded simulated model.
func New() *Simulated {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a simulated model with a fixed seed,
// giving deterministic draws for tests.
func NewSeeded(seed int64) *Simulated {
	return &Simulated{rng: rand.New(rand.NewSource(seed))}
}

// Attempt rolls for success and synthesizes the link record.
// Failure allocates nothing.
func (s *Simulated) Attempt(platform domain.Platform, campaign *domain.Campaign) (*domain.PublishedLink, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() >= platform.SuccessProbability {
		return nil, false
	}

	link := &domain.PublishedLink{
		ID:             uuid.NewString(),
		CampaignID:     campaign.ID,
		UserID:         campaign.UserID,
		SourceURL:      fmt.Sprintf("https://%s/%s", platform.BaseURL, s.token()),
		TargetURL:      campaign.TargetURL,
		AnchorText:     s.anchorText(campaign),
		Platform:       platform.Name,
		Authority:      platform.Authority + s.rng.Intn(2*authorityJitter+1) - authorityJitter,
		Status:         domain.LinkStatusLive,
		PublishedAt:    time.Now(),
		Clicks:         s.rng.Intn(10),
		LinkJuice:      s.rng.Intn(101),
		ResponseTimeMS: 100 + s.rng.Intn(500),
		HTTPStatus:     http.StatusOK,
	}
	return link, true
}

func (s *Simulated) token() string {
	b := make([]byte, tokenLength)
	for i := range b {
		b[i] = tokenAlphabet[s.rng.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

func (s *Simulated) anchorText(campaign *domain.Campaign) string {
	if len(campaign.AnchorTexts) > 0 {
		return campaign.AnchorTexts[s.rng.Intn(len(campaign.AnchorTexts))]
	}
	if len(campaign.Keywords) > 0 {
		return campaign.Keywords[s.rng.Intn(len(campaign.Keywords))]
	}
	return defaultAnchor
}
