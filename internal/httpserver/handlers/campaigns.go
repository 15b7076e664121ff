package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/linkforge/linkforge/internal/domain"
	"github.com/linkforge/linkforge/internal/httpserver/deps"
	"github.com/linkforge/linkforge/internal/logger"
)

type startCampaignRequest struct {
	CampaignID  string   `json:"campaignId"`
	UserID      string   `json:"userId"`
	TargetURL   string   `json:"targetUrl"`
	Keywords    []string `json:"keywords"`
	AnchorTexts []string `json:"anchorTexts"`
	Premium     bool     `json:"premium"`
}

type statusResponse struct {
	ActiveCount int      `json:"activeCount"`
	CampaignIDs []string `json:"campaignIds"`
}

// StartCampaign registers a publishing worker for the campaign.
// Starting an already-running campaign is a no-op and reports 200.
func StartCampaign(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.CampaignID == "" || req.UserID == "" || req.TargetURL == "" {
			writeError(w, http.StatusBadRequest, "campaignId, userId and targetUrl are required")
			return
		}

		if d.Registry.IsActive(req.CampaignID) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":     "already_running",
				"campaignId": req.CampaignID,
			})
			return
		}

		campaign := &domain.Campaign{
			ID:          req.CampaignID,
			UserID:      req.UserID,
			TargetURL:   req.TargetURL,
			Keywords:    req.Keywords,
			AnchorTexts: req.AnchorTexts,
			Premium:     req.Premium,
		}

		// Workers outlive the request; bind them to the app context.
		d.Registry.Start(d.AppCtx, campaign)

		d.Logger.Info("campaign start requested",
			logger.String("campaign_id", req.CampaignID),
			logger.String("remote_ip", r.RemoteAddr))

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status":     "started",
			"campaignId": req.CampaignID,
		})
	}
}

// StopCampaign cancels the campaign's worker. Idempotent.
func StopCampaign(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := chi.URLParam(r, "campaignID")
		if campaignID == "" {
			writeError(w, http.StatusBadRequest, "campaign id is required")
			return
		}

		d.Registry.Stop(campaignID)

		d.Logger.Info("campaign stop requested",
			logger.String("campaign_id", campaignID),
			logger.String("remote_ip", r.RemoteAddr))

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status":     "stopped",
			"campaignId": campaignID,
		})
	}
}

// CampaignStatus reports the active workers.
func CampaignStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := d.Registry.ActiveCampaigns()
		sort.Strings(ids)

		writeJSON(w, http.StatusOK, statusResponse{
			ActiveCount: len(ids),
			CampaignIDs: ids,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
