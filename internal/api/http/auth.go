package http

import (
	"encoding/json"
	"net/http"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRegister creates a new password-based account.
//
//	@Summary		Register a new user
//	@Description	Creates an account with email and password and returns a token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration payload"
//	@Success		201		{object}	httpx.Envelope	"Token pair"
//	@Failure		400		{object}	httpx.Envelope	"Invalid payload"
//	@Failure		409		{object}	httpx.Envelope	"Email already registered"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, pair, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.Name, domain.Role(req.Role))
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "User registered successfully", pair)
}

// HandleLogin authenticates with email and password.
//
//	@Summary		Login
//	@Description	Verifies email/password credentials and returns a token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Login payload"
//	@Success		200		{object}	httpx.Envelope	"Token pair"
//	@Failure		401		{object}	httpx.Envelope	"Invalid email or password"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Login successful", pair)
}

// HandleRefresh rotates the token pair.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a valid refresh token for a new token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	true	"Refresh payload"
//	@Success		200		{object}	httpx.Envelope	"New token pair"
//	@Failure		401		{object}	httpx.Envelope	"Invalid refresh token"
//	@Router			/v1/auth/refresh-token [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.AuthService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Token refreshed successfully", pair)
}

// HandleLogout acknowledges logout. Tokens are stateless so there is
// nothing to revoke server-side; clients drop their copies.
//
//	@Summary		Logout
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
}
