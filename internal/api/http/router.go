package http

import (
	"log/slog"
	"net/http"

	"github.com/feedme/feedme/internal/api/domain"
	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/pkg/httpx"
	"github.com/feedme/feedme/pkg/slogx"

	_ "github.com/feedme/feedme/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	store  store.Store
	logger *slog.Logger

	frontendURL   string
	secureCookies bool
	providers     *oidc.Registry

	TokenService          *service.TokenService
	AuthService           *service.AuthService
	UserService           *service.UserService
	RecipeService         *service.RecipeService
	IngredientService     *service.IngredientService
	InventoryService      *service.InventoryService
	MealPlanService       *service.MealPlanService
	RecommendationService *service.RecommendationService
	AdminService          *service.AdminService
}

func NewRouter(
	st store.Store,
	providers *oidc.Registry,
	frontendURL string,
	secureCookies bool,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		store:         st,
		logger:        logger,
		frontendURL:   frontendURL,
		secureCookies: secureCookies,
		providers:     providers,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRecipes()
	r.registerIngredients()
	r.registerInventory()
	r.registerMealPlans()
	r.registerRecommendations()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FeedMe API
//	@version		1.0.0
//	@description	Recipe management and meal planning REST API with JWT-based
//	@description	authentication and federated login via Google, GitHub and Microsoft.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn requires a valid access token.
func (r *Router) authn() httpx.Middleware {
	return Authn(r.TokenService, r.store.Users())
}

// adminOnly stacks authn plus the admin role check.
func (r *Router) adminOnly(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		r.authn(),
		RequireRole(domain.RoleAdmin),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict profile to slow brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/refresh-token",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	oh := &OIDCHandler{
		Providers:     r.providers,
		AuthService:   r.AuthService,
		FrontendURL:   r.frontendURL,
		SecureCookies: r.secureCookies,
	}
	r.Mux.Handle("GET /v1/auth/{provider}",
		httpx.Chain(http.HandlerFunc(oh.HandleRedirect),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/{provider}/callback",
		httpx.Chain(http.HandlerFunc(oh.HandleCallback),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/users/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/users", r.adminOnly(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{id}", r.adminOnly(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/users/{id}", r.adminOnly(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerRecipes() {
	h := &RecipeHandler{RecipeService: r.RecipeService}

	// Reads are public-plus-own: a valid token enriches the result but is
	// never required.
	optional := OptionalAuthn(r.TokenService, r.store.Users())
	r.Mux.Handle("GET /v1/recipes",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			optional,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/recipes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			optional,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/recipes",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/recipes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/recipes/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerIngredients() {
	h := &IngredientHandler{IngredientService: r.IngredientService}

	r.Mux.Handle("GET /v1/ingredients",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/ingredients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/ingredients", r.adminOnly(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/ingredients/{id}", r.adminOnly(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/ingredients/{id}", r.adminOnly(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerInventory() {
	h := &InventoryHandler{InventoryService: r.InventoryService}

	r.Mux.Handle("GET /v1/inventory",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/inventory",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/inventory/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/inventory/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMealPlans() {
	h := &MealPlanHandler{MealPlanService: r.MealPlanService}

	r.Mux.Handle("GET /v1/meal-plans",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/meal-plans/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/meal-plans",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/meal-plans/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/meal-plans/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/meal-plans/{id}/recipes",
		httpx.Chain(http.HandlerFunc(h.HandleAddEntry),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/meal-plans/{id}/recipes/{entryId}",
		httpx.Chain(http.HandlerFunc(h.HandleRemoveEntry),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRecommendations() {
	h := &RecommendationHandler{RecommendationService: r.RecommendationService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/recommendations/by-ingredients", secured(h.HandleByIngredients))
	r.Mux.Handle("GET /v1/recommendations/by-cuisine/{cuisineType}", secured(h.HandleByCuisine))
	r.Mux.Handle("GET /v1/recommendations/by-dietary", secured(h.HandleByDietary))
	r.Mux.Handle("GET /v1/recommendations/random", secured(h.HandleRandom))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	r.Mux.Handle("GET /v1/admin/stats", r.adminOnly(http.HandlerFunc(h.HandleStats), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/admin/health", r.adminOnly(http.HandlerFunc(h.HandleHealth), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /v1/health",
		httpx.Chain(http.HandlerFunc(HandleHealth),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
