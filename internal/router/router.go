package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/artifaks/herbal-wisdom/internal/auth"
	"github.com/artifaks/herbal-wisdom/internal/config"
	"github.com/artifaks/herbal-wisdom/internal/handler"
	"github.com/artifaks/herbal-wisdom/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	resolver service.EntitlementResolver,
	authHandler *handler.AuthHandler,
	herbHandler *handler.HerbHandler,
	storeHandler *handler.StoreHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	parseToken := ParseTokenFunc(jwtService, tokenStore)

	// requireAuth rejects requests without a valid token.
	requireAuth := echojwt.WithConfig(echojwt.Config{
		TokenLookup:    "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: parseToken,
	})

	// attachPrincipal parses a token when one is present but lets anonymous
	// requests through: the entitlement guard decides what they may see.
	attachPrincipal := echojwt.WithConfig(echojwt.Config{
		TokenLookup:            "header:" + echo.HeaderAuthorization,
		ParseTokenFunc:         parseToken,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Directory routes; premium herb detail is guarded inside the handler.
	herbs := api.Group("/herbs", attachPrincipal)
	herbs.GET("", herbHandler.List)
	herbs.GET("/categories", herbHandler.Categories)
	herbs.GET("/premium", herbHandler.ListPremium, Guard(resolver, service.RequireSubscription))
	herbs.GET("/:id", herbHandler.Get)

	api.GET("/stores", storeHandler.List)
	api.GET("/stores/locations", storeHandler.Locations)
	api.GET("/stores/specialties", storeHandler.Specialties)
	api.GET("/stores/:id", storeHandler.Get)

	// Payment processor webhook; authenticated by payload signature.
	api.POST("/webhooks/payment", subscriptionHandler.Webhook)

	// Secured routes (require JWT authentication)
	secured := api.Group("", requireAuth)
	secured.GET("/me", authHandler.Me)
	secured.POST("/checkout-session", subscriptionHandler.CreateCheckoutSession)
	secured.GET("/subscription", subscriptionHandler.GetSubscription)

	// Admin routes
	admin := api.Group("/admin", attachPrincipal, Guard(resolver, service.RequireAdmin))
	admin.POST("/herbs", adminHandler.CreateHerb)
	admin.PUT("/herbs/:id", adminHandler.UpdateHerb)
	admin.DELETE("/herbs/:id", adminHandler.DeleteHerb)
	admin.POST("/herbs/image", adminHandler.UploadImage)
	admin.DELETE("/images", adminHandler.DeleteImage)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
