package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type UserHandler struct {
	UserService *service.UserService
}

type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Picture  *string `json:"picture,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// HandleMe returns the calling user's profile.
//
//	@Summary	Current user profile
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"User"
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/v1/users/me [get].
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	u, err := h.UserService.GetUserByID(r.Context(), ident.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toUserResponse(u))
}

// HandleList pages through all users.
//
//	@Summary	List users
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Param		offset	query		int	false	"Offset"
//	@Success	200		{object}	httpx.Envelope	"Users"
//	@Failure	403		{object}	httpx.Envelope
//	@Router		/v1/users [get].
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.UserService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toUserResponses(users))
}

// HandleGet returns one user by id.
//
//	@Summary	Get user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	httpx.Envelope	"User"
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/users/{id} [get].
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toUserResponse(u))
}

// HandleUpdate applies a partial update to a user. Owners may edit their
// own profile; only admins may edit others or change roles.
//
//	@Summary	Update user
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User id"
//	@Param		body	body		updateUserRequest	true	"Fields to update"
//	@Success	200		{object}	httpx.Envelope		"Updated user"
//	@Failure	403		{object}	httpx.Envelope
//	@Router		/v1/users/{id} [put].
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := service.UserUpdate{
		Name:     req.Name,
		Picture:  req.Picture,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	u, err := h.UserService.UpdateUser(r.Context(), ident, r.PathValue("id"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User updated successfully", toUserResponse(u))
}

// HandleDelete removes a user and everything they own.
//
//	@Summary	Delete user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/users/{id} [delete].
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "User deleted successfully", nil)
}
