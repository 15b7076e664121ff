package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkforge/linkforge/internal/httpserver/deps"
	"github.com/linkforge/linkforge/internal/httpserver/handlers"
)

func init() { Register(registerCampaigns) }

func registerCampaigns(r chi.Router, d deps.Deps) {
	r.Route("/api/campaigns", func(r chi.Router) {
		r.Post("/start", handlers.StartCampaign(d))
		r.Post("/{campaignID}/stop", handlers.StopCampaign(d))
		r.Get("/status", handlers.CampaignStatus(d))
	})
}
