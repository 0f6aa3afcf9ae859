package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/pkg/jwt"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
)

const (
	StaffIDKey = "staffID"
)

// Auth JWT 认证中间件
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "认证失败或已过期")
			c.Abort()
			return
		}

		c.Set(StaffIDKey, claims.UserID)
		c.Next()
	}
}

// GetStaffID 从上下文获取员工 ID
func GetStaffID(c *gin.Context) (int64, bool) {
	staffID, exists := c.Get(StaffIDKey)
	if !exists {
		return 0, false
	}
	id, ok := staffID.(int64)
	return id, ok
}
