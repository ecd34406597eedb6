package middleware

import (
	"budaya_backend/internal/config"
	"budaya_backend/internal/util"
	"budaya_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

// AuthMiddleware 要求携带有效令牌
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug("JWT parse failed", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		setUser(c, claims)
		c.Next()
	}
}

// setUser 注入用户，并把 user_id 挂到请求级 logger 上
func setUser(c *gin.Context, claims *util.Claims) {
	c.Set("user", claims)
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), zap.Uint("user_id", claims.UserID)))
}

// TryAuthMiddleware 可选认证：令牌有效时注入用户，否则按游客处理
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				setUser(c, claims)
			} else {
				logger.FromContext(c.Request.Context()).Debug("Ignoring invalid token on optional auth route", zap.Error(err))
			}
		}
		c.Next()
	}
}
