package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/pkg/httpx"
)

type RecommendationHandler struct {
	RecommendationService *service.RecommendationService
}

// HandleByIngredients returns recipes fully coverable from the caller's
// inventory.
//
//	@Summary	Recommend by available ingredients
//	@Tags		Recommendations
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"Recipes"
//	@Router		/v1/recommendations/by-ingredients [get].
func (h *RecommendationHandler) HandleByIngredients(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	recipes, err := h.RecommendationService.ByIngredients(r.Context(), ident.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toRecipeResponses(recipes))
}

// HandleByCuisine returns visible recipes of one cuisine type.
//
//	@Summary	Recommend by cuisine
//	@Tags		Recommendations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		cuisineType	path		string	true	"Cuisine type"
//	@Success	200			{object}	httpx.Envelope	"Recipes"
//	@Router		/v1/recommendations/by-cuisine/{cuisineType} [get].
func (h *RecommendationHandler) HandleByCuisine(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	recipes, err := h.RecommendationService.ByCuisine(r.Context(), ident.ID, r.PathValue("cuisineType"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toRecipeResponses(recipes))
}

// HandleByDietary returns visible recipes carrying every tag in the
// comma-separated "tags" query parameter.
//
//	@Summary	Recommend by dietary restrictions
//	@Tags		Recommendations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		tags	query		string	false	"Comma-separated dietary tags"
//	@Success	200		{object}	httpx.Envelope	"Recipes"
//	@Router		/v1/recommendations/by-dietary [get].
func (h *RecommendationHandler) HandleByDietary(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	recipes, err := h.RecommendationService.ByDietary(r.Context(), ident.ID, tags)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toRecipeResponses(recipes))
}

// HandleRandom returns up to "count" randomly chosen visible recipes.
//
//	@Summary	Random recommendations
//	@Tags		Recommendations
//	@Security	BearerAuth
//	@Produce	json
//	@Param		count	query		int	false	"Number of recipes (default 5)"
//	@Success	200		{object}	httpx.Envelope	"Recipes"
//	@Router		/v1/recommendations/random [get].
func (h *RecommendationHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	recipes, err := h.RecommendationService.Random(r.Context(), ident.ID, count)
	if err != nil {
		respondError(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", toRecipeResponses(recipes))
}
