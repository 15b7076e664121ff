package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkforge/linkforge/internal/domain"
)

// Store implements the persistence gateway on top of PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Postgres store
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect creates a pgx pool and verifies connectivity with a
// bounded ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return pool, nil
}

// InsertPublishedLink stores one published link row.
func (s *Store) InsertPublishedLink(ctx context.Context, link *domain.PublishedLink) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO published_links
		    (id, campaign_id, user_id, source_url, target_url, anchor_text,
		     platform, authority, status, published_at, clicks, link_juice,
		     response_time_ms, http_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		link.ID, link.CampaignID, link.UserID, link.SourceURL, link.TargetURL,
		link.AnchorText, link.Platform, link.Authority, link.Status,
		link.PublishedAt, link.Clicks, link.LinkJuice, link.ResponseTimeMS,
		link.HTTPStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to insert link %s: %w", link.ID, err)
	}
	return nil
}

// UpdateCampaignMetrics persists the campaign aggregates.
func (s *Store) UpdateCampaignMetrics(ctx context.Context, campaignID string, metrics domain.CampaignMetrics) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE campaigns SET
		    links_generated = $2,
		    links_live      = $3,
		    avg_authority   = $4,
		    success_rate    = $5,
		    velocity        = $6,
		    efficiency      = $7,
		    last_activity   = $8,
		    updated_at      = now()
		WHERE id = $1`,
		campaignID, metrics.LinksGenerated, metrics.LinksLive,
		metrics.AvgAuthority, metrics.SuccessRate, metrics.Velocity,
		metrics.Efficiency, metrics.LastActivity,
	)
	if err != nil {
		return fmt.Errorf("failed to update metrics for campaign %s: %w", campaignID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s not found", campaignID)
	}
	return nil
}

// AppendActivityLog inserts one activity row.
func (s *Store) AppendActivityLog(ctx context.Context, event *domain.ActivityEvent) error {
	var payload []byte
	if event.Payload != nil {
		var err error
		payload, err = json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal activity payload: %w", err)
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO activity_log (id, campaign_id, kind, message, success, payload, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		event.ID, event.CampaignID, event.Kind, event.Message,
		event.Success, payload, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity for campaign %s: %w", event.CampaignID, err)
	}
	return nil
}

// CountRecentLinksForUser counts a user's links published since the
// given time. Served by the (user_id, published_at) index.
func (s *Store) CountRecentLinksForUser(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM published_links
		WHERE user_id = $1 AND published_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent links for user %s: %w", userID, err)
	}
	return count, nil
}

// GetUserPremiumStatus reports the premium flag. Unknown users are
// not premium.
func (s *Store) GetUserPremiumStatus(ctx context.Context, userID string) (bool, error) {
	var premium bool
	err := s.pool.QueryRow(ctx,
		`SELECT is_premium FROM users WHERE id = $1`, userID,
	).Scan(&premium)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get premium status for user %s: %w", userID, err)
	}
	return premium, nil
}
