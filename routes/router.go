package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/auth"
	"github.com/DhavalSuthar-24/socialsoccer/internal/game"
	"github.com/DhavalSuthar-24/socialsoccer/internal/middleware"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/responses"
)

// Services are the application services the HTTP layer is built on.
type Services struct {
	Auth      *auth.Service
	Users     *user.Service
	Addresses *address.Service
	Games     *game.Service
}

// Router is the configured engine plus the resources that must be released on shutdown.
type Router struct {
	Engine  *gin.Engine
	limiter *middleware.RateLimiter
}

func (r *Router) Close() {
	r.limiter.Stop()
}

func SetupRoutes(cfg *config.Config, db *gorm.DB, svc Services, log logger.Logger) *Router {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", healthz(db))

	authenticator := middleware.NewAuthenticator(svc.Auth, cfg, log)
	requireAuth := authenticator.RequireAuth()
	optionalAuth := authenticator.OptionalAuth()
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst)

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, auth.NewAuthController(svc.Auth, cfg), requireAuth, limiter.Middleware())
	user.RegisterProfileRoutes(api, user.NewUserController(svc.Users), requireAuth)
	address.RegisterAddressRoutes(api, address.NewAddressController(svc.Addresses), requireAuth)
	game.RegisterGameRoutes(api, game.NewGameController(svc.Games), requireAuth, optionalAuth)

	r.NoRoute(func(c *gin.Context) {
		responses.NotFound(c, "Route")
	})

	return &Router{Engine: r, limiter: limiter}
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			responses.SendError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "ok", nil)
	}
}
