package router

import (
	"fmt"
	"strings"

	"github.com/sanjose-despensas/backend/internal/cache"
	"github.com/sanjose-despensas/backend/internal/config"
	adminhandlers "github.com/sanjose-despensas/backend/internal/http/handlers/admin"
	poshandlers "github.com/sanjose-despensas/backend/internal/http/handlers/pos"
	publichandlers "github.com/sanjose-despensas/backend/internal/http/handlers/public"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes onto a fresh engine.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	posHandler := poshandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dsj"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/dashboard", posHandler.GetDashboard)

			authorized.GET("/members", posHandler.ListMembers)
			authorized.GET("/members/search", posHandler.SearchMembers)
			authorized.GET("/members/export", posHandler.ExportMembers)
			authorized.GET("/members/:id", posHandler.GetMember)
			authorized.POST("/members", posHandler.CreateMember)
			authorized.PATCH("/members/:id/status", posHandler.SetMemberStatus)
			authorized.DELETE("/members/:id", posHandler.DeleteMember)

			authorized.POST("/pos/deliveries", posHandler.RecordDelivery)
			authorized.GET("/pos/session/branch", posHandler.GetSessionBranch)
			authorized.POST("/pos/session/branch", posHandler.SetSessionBranch)
			authorized.DELETE("/pos/session/branch", posHandler.ClearSessionBranch)

			authorized.PUT("/me/password", posHandler.ChangePassword)

			authorized.GET("/admin/stock", adminHandler.GetStock)
			authorized.POST("/admin/stock/transfers", adminHandler.TransferToBranch)
			authorized.POST("/admin/stock/returns", adminHandler.ReturnToWarehouse)
			authorized.POST("/admin/stock/reset", adminHandler.ResetStock)

			authorized.GET("/admin/deliveries", adminHandler.ListDeliveries)

			authorized.POST("/admin/members/import", adminHandler.ImportMembers)
			authorized.DELETE("/admin/members", adminHandler.PurgeMembers)

			authorized.GET("/admin/users", adminHandler.ListUsers)
			authorized.POST("/admin/users", adminHandler.CreateUser)
			authorized.PUT("/admin/users/:id", adminHandler.UpdateUser)
			authorized.DELETE("/admin/users/:id", adminHandler.DeleteUser)
		}
	}

	return r
}
