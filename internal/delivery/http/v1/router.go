package v1

import (
	"net/http"
	"time"

	"go-unhired-backend/config"
	"go-unhired-backend/internal/delivery/http/middleware"
	"go-unhired-backend/internal/delivery/http/response"
	"go-unhired-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ApplicationUC  domain.ApplicationUsecase
	JobUC          domain.JobUsecase
	NotificationUC domain.NotificationUsecase
	BadgeUC        domain.BadgeUsecase
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewBadgeHandler(protected, deps.BadgeUC)
	}

	return r
}
