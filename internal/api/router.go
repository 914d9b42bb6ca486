package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/activityhub/membership-api/internal/api/handler"
	"github.com/activityhub/membership-api/internal/api/middleware"
	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
	"github.com/activityhub/membership-api/internal/core/service"
	"github.com/activityhub/membership-api/internal/infrastructure/config"
	mongodb "github.com/activityhub/membership-api/internal/infrastructure/db/mongo"
	redisdb "github.com/activityhub/membership-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, store ports.ObjectStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("membership"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	newsRepo := mongodb.NewNewsRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.JWTSecret, cfg.TokenTTL, log)
	profileService := service.NewProfileService(userRepo, log)
	memberService := service.NewMemberService(userRepo, log)
	activityService := service.NewActivityService(activityRepo, log)
	newsService := service.NewNewsService(newsRepo, log)
	uploadService := service.NewUploadService(store, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	memberHandler := handler.NewMemberHandler(memberService)
	activityHandler := handler.NewActivityHandler(activityService)
	newsHandler := handler.NewNewsHandler(newsService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	authGuard := middleware.Auth(cfg.JWTSecret, userRepo, sessionStore)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout, authGuard)

	// --- Member self-service ---
	users := e.Group("/v1/users", authGuard)
	users.GET("/profile", profileHandler.Get)
	users.PATCH("/profile", profileHandler.Update)
	users.PATCH("/password", profileHandler.ChangePassword)
	users.POST("/picture", uploadHandler.UploadUserImage)

	// --- Public content ---
	e.GET("/v1/activities", activityHandler.ListPublished)
	e.GET("/v1/activities/:id", activityHandler.GetPublished)
	e.GET("/v1/news", newsHandler.List)
	e.GET("/v1/news/:id", newsHandler.Get)

	// --- Admin back office ---
	admin := e.Group("/v1/admin", authGuard, adminOnly)
	admin.GET("/members", memberHandler.List)
	admin.PATCH("/members/:id/status", memberHandler.SetDisabled)
	admin.DELETE("/members/:id", memberHandler.Delete)

	admin.POST("/activities", activityHandler.Create)
	admin.GET("/activities", activityHandler.List)
	admin.POST("/activities/upload_image", uploadHandler.UploadActivityImage)
	admin.GET("/activities/:id", activityHandler.Get)
	admin.PATCH("/activities/:id", activityHandler.Update)
	admin.POST("/activities/:id/publish", activityHandler.Publish)
	admin.POST("/activities/:id/cancel", activityHandler.Cancel)

	admin.POST("/news", newsHandler.Create)
	admin.GET("/news", newsHandler.List)
	admin.GET("/news/:id", newsHandler.Get)
	admin.PATCH("/news/:id", newsHandler.Update)
	admin.DELETE("/news/:id", newsHandler.Delete)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// Unknown routes get a fixed payload instead of echo's default.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "route not found"})
	})

	return e
}
