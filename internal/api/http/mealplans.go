package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type MealPlanHandler struct {
	MealPlanService *service.MealPlanService
}

type mealPlanRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type mealPlanEntryRequest struct {
	RecipeID    string    `json:"recipeId"`
	PlannedDate time.Time `json:"plannedDate"`
	MealType    string    `json:"mealType"`
}

// HandleList returns the caller's meal plans.
//
//	@Summary	List meal plans
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Meal plans"
//	@Router		/v1/meal-plans [get].
func (h *MealPlanHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	plans, err := h.MealPlanService.ListMealPlans(r.Context(), ident.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]mealPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toMealPlanResponse(p))
	}
	httpx.WriteSuccess(w, http.StatusOK, "", out)
}

// HandleGet returns one meal plan with entries.
//
//	@Summary	Get meal plan
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Meal plan id"
//	@Success	200	{object}	httpx.Envelope	"Meal plan"
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/meal-plans/{id} [get].
func (h *MealPlanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	p, err := h.MealPlanService.GetMealPlan(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toMealPlanResponse(p))
}

// HandleCreate creates an empty plan over a date range.
//
//	@Summary	Create meal plan
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		mealPlanRequest	true	"Plan payload"
//	@Success	201		{object}	httpx.Envelope	"Created plan"
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/v1/meal-plans [post].
func (h *MealPlanHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.MealPlanService.CreateMealPlan(r.Context(), ident.ID, req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Meal plan created successfully", toMealPlanResponse(p))
}

// HandleUpdate changes the plan's date range.
//
//	@Summary	Update meal plan
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Meal plan id"
//	@Param		body	body		mealPlanRequest	true	"Fields to update"
//	@Success	200		{object}	httpx.Envelope	"Updated plan"
//	@Failure	403		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/v1/meal-plans/{id} [put].
func (h *MealPlanHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.MealPlanService.UpdateMealPlan(r.Context(), ident, r.PathValue("id"), req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Meal plan updated successfully", toMealPlanResponse(p))
}

// HandleDelete removes a plan and its entries.
//
//	@Summary	Delete meal plan
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Meal plan id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/meal-plans/{id} [delete].
func (h *MealPlanHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	if err := h.MealPlanService.DeleteMealPlan(r.Context(), ident, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Meal plan deleted successfully", nil)
}

// HandleAddEntry schedules a recipe on a day of the plan.
//
//	@Summary	Add recipe to meal plan
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Meal plan id"
//	@Param		body	body		mealPlanEntryRequest	true	"Entry payload"
//	@Success	201		{object}	httpx.Envelope			"Updated plan"
//	@Failure	403		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/v1/meal-plans/{id}/recipes [post].
func (h *MealPlanHandler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req mealPlanEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.MealPlanService.AddEntry(r.Context(), ident, r.PathValue("id"), req.RecipeID, req.PlannedDate, req.MealType)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Recipe added to meal plan", toMealPlanResponse(p))
}

// HandleRemoveEntry unschedules a recipe entry.
//
//	@Summary	Remove recipe from meal plan
//	@Tags		MealPlans
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id			path		string	true	"Meal plan id"
//	@Param		entryId		path		string	true	"Entry id"
//	@Success	200			{object}	httpx.Envelope
//	@Failure	404			{object}	httpx.Envelope
//	@Router		/v1/meal-plans/{id}/recipes/{entryId} [delete].
func (h *MealPlanHandler) HandleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	err := h.MealPlanService.RemoveEntry(r.Context(), ident, r.PathValue("id"), r.PathValue("entryId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Recipe removed from meal plan", nil)
}
