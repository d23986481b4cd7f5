package http

import (
	"net/http"

	"github.com/feedme/feedme/internal/api/apperr"
	"github.com/feedme/feedme/pkg/httpx"
	"github.com/feedme/feedme/pkg/slogx"
)

// respondError writes err to the client. Operational errors carry their own
// status and message; anything else is logged with full detail server-side
// and surfaces as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr := apperr.From(err); apiErr != nil {
		if apiErr.Status >= http.StatusInternalServerError {
			slogx.FromContext(r.Context()).Error("request failed", "err", err)
		}
		httpx.WriteErrorMessage(w, apiErr.Status, apiErr.Message)
		return
	}

	slogx.FromContext(r.Context()).Error("unexpected error", "err", err)
	httpx.WriteErrorMessage(w, http.StatusInternalServerError, "Internal server error")
}
