package v1

import (
	"net/http"
	"time"

	"hirehub-backend/config"
	"hirehub-backend/internal/delivery/http/middleware"
	"hirehub-backend/internal/delivery/http/response"
	"hirehub-backend/internal/domain"
	"hirehub-backend/pkg/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	JobUC          domain.JobUsecase
	ApplicationUC  domain.ApplicationUsecase
	InterviewUC    domain.InterviewUsecase
	NotificationUC domain.NotificationUsecase
	ProfileUC      domain.ProfileUsecase
	Tokens         *token.Manager
	RateLimiter    *middleware.RateLimiter
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can short-circuit the request.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginLimiter := deps.RateLimiter.Middleware(middleware.LoginRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))

	recruiter := protected.Group("/recruiters")
	recruiter.Use(middleware.RequireRole(domain.RoleRecruiter))

	candidate := protected.Group("/candidates")
	candidate.Use(middleware.RequireRole(domain.RoleCandidate))

	NewAuthHandler(v1, protected, deps.AuthUC, loginLimiter)
	NewJobHandler(v1, recruiter, deps.JobUC)
	NewApplicationHandler(candidate, recruiter, deps.ApplicationUC, deps.Config.FrontendURL)
	NewInterviewHandler(recruiter, deps.InterviewUC)
	NewNotificationHandler(protected, deps.NotificationUC)
	NewProfileHandler(candidate, recruiter, deps.ProfileUC)
	NewExtractHandler(recruiter)

	return r
}
