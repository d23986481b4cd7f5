package http

import (
	"net/http"

	"github.com/feedme/feedme/pkg/httpx"
)

// HandleHealth is the public liveness probe.
//
//	@Summary	Health check
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope
//	@Router		/v1/health [get].
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteSuccess(w, http.StatusOK, "Server is running", nil)
}
