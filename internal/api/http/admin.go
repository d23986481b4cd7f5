package http

import (
	"net/http"

	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleStats returns entity counts for the admin dashboard.
//
//	@Summary	Admin dashboard stats
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Stats"
//	@Failure	403	{object}	httpx.Envelope
//	@Router		/v1/admin/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", stats)
}

// HandleHealth reports database liveness and uptime.
//
//	@Summary	Admin system health
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Health"
//	@Failure	403	{object}	httpx.Envelope
//	@Router		/v1/admin/health [get].
func (h *AdminHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.AdminService.Health(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", health)
}
