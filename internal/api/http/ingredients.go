package http

import (
	"encoding/json"
	"net/http"

	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type IngredientHandler struct {
	IngredientService *service.IngredientService
}

type ingredientRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	ShelfLifeDays int    `json:"shelfLifeDays"`
}

// HandleList returns the full ingredient catalog.
//
//	@Summary	List ingredients
//	@Tags		Ingredients
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Ingredients"
//	@Router		/v1/ingredients [get].
func (h *IngredientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.IngredientService.ListIngredients(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]ingredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, toIngredientResponse(ing))
	}
	httpx.WriteSuccess(w, http.StatusOK, "", out)
}

// HandleGet returns one catalog entry.
//
//	@Summary	Get ingredient
//	@Tags		Ingredients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Ingredient id"
//	@Success	200	{object}	httpx.Envelope	"Ingredient"
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/ingredients/{id} [get].
func (h *IngredientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ing, err := h.IngredientService.GetIngredient(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toIngredientResponse(ing))
}

// HandleCreate adds a catalog entry (admin only).
//
//	@Summary	Create ingredient
//	@Tags		Ingredients
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ingredientRequest	true	"Ingredient payload"
//	@Success	201		{object}	httpx.Envelope		"Created ingredient"
//	@Failure	409		{object}	httpx.Envelope
//	@Router		/v1/ingredients [post].
func (h *IngredientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ing, err := h.IngredientService.CreateIngredient(r.Context(), req.Name, req.Category, req.ShelfLifeDays)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Ingredient created successfully", toIngredientResponse(ing))
}

// HandleUpdate edits a catalog entry (admin only).
//
//	@Summary	Update ingredient
//	@Tags		Ingredients
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Ingredient id"
//	@Param		body	body		ingredientRequest	true	"Fields to update"
//	@Success	200		{object}	httpx.Envelope		"Updated ingredient"
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/v1/ingredients/{id} [put].
func (h *IngredientHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ing, err := h.IngredientService.UpdateIngredient(r.Context(), r.PathValue("id"), req.Name, req.Category, req.ShelfLifeDays)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Ingredient updated successfully", toIngredientResponse(ing))
}

// HandleDelete removes a catalog entry (admin only).
//
//	@Summary	Delete ingredient
//	@Tags		Ingredients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Ingredient id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/ingredients/{id} [delete].
func (h *IngredientHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.IngredientService.DeleteIngredient(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Ingredient deleted successfully", nil)
}
