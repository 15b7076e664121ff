package outcome

import (
	"math"
	"strings"
	"testing"

	"github.com/linkforge/linkforge/internal/domain"
)

func testCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:          "camp-1",
		UserID:      "user-1",
		TargetURL:   "https://shop.example.com",
		Keywords:    []string{"widgets"},
		AnchorTexts: []string{"buy widgets", "cheap widgets"},
	}
}

func testPlatform(p float64) domain.Platform {
	return domain.Platform{
		Name:               "Medium",
		BaseURL:            "medium.com",
		Authority:          94,
		SuccessProbability: p,
	}
}

func TestAttemptSuccessRateConverges(t *testing.T) {
	const (
		n         = 10000
		p         = 0.9
		tolerance = 0.03
	)

	model := NewSeeded(1)
	campaign := testCampaign()
	platform := testPlatform(p)

	successes := 0
	for i := 0; i < n; i++ {
		if _, ok := model.Attempt(platform, campaign); ok {
			successes++
		}
	}

	observed := float64(successes) / float64(n)
	if math.Abs(observed-p) >= tolerance {
		t.Errorf("observed success rate %v, expected within %v of %v", observed, tolerance, p)
	}
}

func TestAttemptSuccessShape(t *testing.T) {
	model := NewSeeded(7)
	campaign := testCampaign()
	platform := testPlatform(1.0) // always succeeds

	link, ok := model.Attempt(platform, campaign)
	if !ok || link == nil {
		t.Fatal("expected success with probability 1")
	}

	if link.ID == "" {
		t.Error("expected generated link id")
	}
	if link.CampaignID != campaign.ID || link.UserID != campaign.UserID {
		t.Errorf("link ownership mismatch: %s/%s", link.CampaignID, link.UserID)
	}
	if !strings.HasPrefix(link.SourceURL, "https://medium.com/") {
		t.Errorf("unexpected source url %q", link.SourceURL)
	}
	if token := strings.TrimPrefix(link.SourceURL, "https://medium.com/"); len(token) != tokenLength {
		t.Errorf("expected %d-char token, got %q", tokenLength, token)
	}
	if link.TargetURL != campaign.TargetURL {
		t.Errorf("expected target %q, got %q", campaign.TargetURL, link.TargetURL)
	}
	if link.Authority < platform.Authority-authorityJitter || link.Authority > platform.Authority+authorityJitter {
		t.Errorf("authority %d outside jitter range around %d", link.Authority, platform.Authority)
	}
	if link.Status != domain.LinkStatusLive {
		t.Errorf("expected live status, got %q", link.Status)
	}
	if link.Clicks < 0 || link.Clicks > 9 {
		t.Errorf("clicks %d outside [0,9]", link.Clicks)
	}
	if link.LinkJuice < 0 || link.LinkJuice > 100 {
		t.Errorf("link juice %d outside [0,100]", link.LinkJuice)
	}
	if link.ResponseTimeMS < 100 || link.ResponseTimeMS > 599 {
		t.Errorf("response time %d outside [100,599]", link.ResponseTimeMS)
	}
	if link.HTTPStatus != 200 {
		t.Errorf("expected http status 200, got %d", link.HTTPStatus)
	}
	if link.PublishedAt.IsZero() {
		t.Error("expected published timestamp")
	}
}

func TestAttemptFailureAllocatesNothing(t *testing.T) {
	model := NewSeeded(3)
	platform := testPlatform(0.0000001)

	for i := 0; i < 100; i++ {
		link, ok := model.Attempt(platform, testCampaign())
		if ok || link != nil {
			t.Fatal("expected failure with near-zero probability")
		}
	}
}

func TestAnchorTextSelection(t *testing.T) {
	model := NewSeeded(11)
	platform := testPlatform(1.0)

	t.Run("prefers anchor texts", func(t *testing.T) {
		campaign := testCampaign()
		allowed := map[string]bool{"buy widgets": true, "cheap widgets": true}
		for i := 0; i < 50; i++ {
			link, _ := model.Attempt(platform, campaign)
			if !allowed[link.AnchorText] {
				t.Fatalf("anchor %q not from anchor list", link.AnchorText)
			}
		}
	})

	t.Run("falls back to keywords", func(t *testing.T) {
		campaign := testCampaign()
		campaign.AnchorTexts = nil
		link, _ := model.Attempt(platform, campaign)
		if link.AnchorText != "widgets" {
			t.Errorf("expected keyword anchor, got %q", link.AnchorText)
		}
	})

	t.Run("falls back to default literal", func(t *testing.T) {
		campaign := testCampaign()
		campaign.AnchorTexts = nil
		campaign.Keywords = nil
		link, _ := model.Attempt(platform, campaign)
		if link.AnchorText != defaultAnchor {
			t.Errorf("expected default anchor, got %q", link.AnchorText)
		}
	})
}
