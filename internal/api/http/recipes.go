package http

import (
	"encoding/json"
	"net/http"

	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type RecipeHandler struct {
	RecipeService *service.RecipeService
}

type recipeIngredientRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

type recipeRequest struct {
	Name              string                    `json:"name"`
	ImageURL          string                    `json:"imageUrl"`
	PreparationSteps  string                    `json:"preparationSteps"`
	CookingTime       int                       `json:"cookingTime"`
	CuisineType       string                    `json:"cuisineType"`
	SuitableMealTypes []string                  `json:"suitableMealTypes"`
	IsPublic          bool                      `json:"isPublic"`
	DietaryTags       []string                  `json:"dietaryRestrictions"`
	Ingredients       []recipeIngredientRequest `json:"ingredients"`
}

func (req recipeRequest) toInput() service.RecipeInput {
	var ingredients []service.RecipeIngredientInput
	if req.Ingredients != nil {
		ingredients = make([]service.RecipeIngredientInput, 0, len(req.Ingredients))
		for _, ing := range req.Ingredients {
			ingredients = append(ingredients, service.RecipeIngredientInput{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
				Notes:    ing.Notes,
			})
		}
	}
	return service.RecipeInput{
		Name:              req.Name,
		ImageURL:          req.ImageURL,
		PreparationSteps:  req.PreparationSteps,
		CookingTimeMins:   req.CookingTime,
		CuisineType:       req.CuisineType,
		SuitableMealTypes: req.SuitableMealTypes,
		IsPublic:          req.IsPublic,
		DietaryTags:       req.DietaryTags,
		Ingredients:       ingredients,
	}
}

// HandleList returns public recipes, plus the caller's own when a valid
// token accompanied the request.
//
//	@Summary	List recipes
//	@Tags		Recipes
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Recipes"
//	@Router		/v1/recipes [get].
func (h *RecipeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if ident, ok := IdentityFromContext(r.Context()); ok {
		userID = ident.ID
	}

	recipes, err := h.RecipeService.ListRecipes(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toRecipeResponses(recipes))
}

// HandleGet returns one recipe if public or owned by the caller.
//
//	@Summary	Get recipe
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path		string	true	"Recipe id"
//	@Success	200	{object}	httpx.Envelope	"Recipe"
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/recipes/{id} [get].
func (h *RecipeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if ident, ok := IdentityFromContext(r.Context()); ok {
		userID = ident.ID
	}

	recipe, err := h.RecipeService.GetRecipe(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toRecipeResponse(recipe))
}

// HandleCreate creates a recipe owned by the caller.
//
//	@Summary	Create recipe
//	@Tags		Recipes
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		recipeRequest	true	"Recipe payload"
//	@Success	201		{object}	httpx.Envelope	"Created recipe"
//	@Failure	400		{object}	httpx.Envelope
//	@Router		/v1/recipes [post].
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipe, err := h.RecipeService.CreateRecipe(r.Context(), ident.ID, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Recipe created successfully", toRecipeResponse(recipe))
}

// HandleUpdate updates a recipe the caller owns.
//
//	@Summary	Update recipe
//	@Tags		Recipes
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Recipe id"
//	@Param		body	body		recipeRequest	true	"Recipe payload"
//	@Success	200		{object}	httpx.Envelope	"Updated recipe"
//	@Failure	403		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/v1/recipes/{id} [put].
func (h *RecipeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipe, err := h.RecipeService.UpdateRecipe(r.Context(), ident, r.PathValue("id"), req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Recipe updated successfully", toRecipeResponse(recipe))
}

// HandleDelete deletes a recipe (owner or admin).
//
//	@Summary	Delete recipe
//	@Tags		Recipes
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Recipe id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/v1/recipes/{id} [delete].
func (h *RecipeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	if err := h.RecipeService.DeleteRecipe(r.Context(), ident, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Recipe deleted successfully", nil)
}
