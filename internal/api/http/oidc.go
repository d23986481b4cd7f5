package http

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/cryptox"
	"github.com/feedme/feedme/pkg/httpx"
	"github.com/feedme/feedme/pkg/slogx"
)

const stateCookieName = "oauth_state"
const stateCookieTTL = 10 * time.Minute

// OIDCHandler drives the browser-redirect federated login flow.
type OIDCHandler struct {
	Providers   *oidc.Registry
	AuthService *service.AuthService

	// FrontendURL receives the token pair as query parameters after a
	// successful callback.
	FrontendURL string

	// SecureCookies marks the state cookie Secure; disable only for
	// local plain-http development.
	SecureCookies bool
}

// HandleRedirect starts the flow for one provider.
//
//	@Summary		Start federated login
//	@Description	Redirects the browser to the provider's consent page.
//	@Tags			Auth
//	@Param			provider	path	string	true	"Provider name (google, github, microsoft)"
//	@Success		302
//	@Failure		404	{object}	httpx.Envelope	"Provider not configured"
//	@Router			/v1/auth/{provider} [get].
func (h *OIDCHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	if !h.Providers.Has(provider) {
		httpx.WriteErrorMessage(w, http.StatusNotFound, "Unknown login provider")
		return
	}

	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	authURL, err := h.Providers.AuthCodeURL(provider, state)
	if err != nil {
		respondError(w, r, err)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// HandleCallback finishes the flow: state check, code exchange, sign-in,
// then a redirect to the frontend carrying the token pair.
//
//	@Summary		Federated login callback
//	@Tags			Auth
//	@Param			provider	path	string	true	"Provider name"
//	@Param			code		query	string	true	"Authorization code"
//	@Param			state		query	string	true	"Anti-forgery state"
//	@Success		302
//	@Failure		401	{object}	httpx.Envelope	"State mismatch or exchange failure"
//	@Router			/v1/auth/{provider}/callback [get].
func (h *OIDCHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	provider := r.PathValue("provider")

	if !h.Providers.Has(provider) {
		httpx.WriteErrorMessage(w, http.StatusNotFound, "Unknown login provider")
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	// One-shot state; expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	info, err := h.Providers.Exchange(ctx, provider, code)
	if err != nil {
		log.Warn("federated exchange failed", "provider", provider, "err", err)
		httpx.WriteErrorMessage(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	_, pair, err := h.AuthService.FederatedLogin(ctx, provider, info)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Tokens travel as query parameters because the original contract
	// expects the SPA to read them off the callback URL. They end up in
	// browser history; revisit with a one-time code if that matters.
	redirect := fmt.Sprintf("%s/auth/callback?accessToken=%s&refreshToken=%s",
		h.FrontendURL,
		url.QueryEscape(pair.AccessToken),
		url.QueryEscape(pair.RefreshToken),
	)
	http.Redirect(w, r, redirect, http.StatusFound)
}
