package app

import (
	"budaya_backend/docs"
	"budaya_backend/internal/config"
	"budaya_backend/internal/middleware"
	"budaya_backend/pkg/monitoring"
	"budaya_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	a.registerQuizRoutes(api, c, cfg)
}

func (a *App) registerQuizRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	// 游客可答题，携带令牌时记录用户
	api.POST("/quizzes/:slug/attempts", security.NoStore(), middleware.TryAuthMiddleware(cfg), c.quiz.StartAttempt)

	attempts := api.Group("/quiz-attempts", security.NoStore())
	{
		attempts.GET("/mine", middleware.AuthMiddleware(cfg), c.quiz.ListMyAttempts)
		attempts.POST("/:id/answers", c.quiz.SubmitAnswer)
		attempts.POST("/:id/complete", c.quiz.CompleteAttempt)
		attempts.GET("/:id/result", c.quiz.GetAttemptResult)
	}
}
