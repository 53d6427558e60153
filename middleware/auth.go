package middleware

import (
	"net/http"
	"strings"
	"time"

	"LuckyChat/pkg/jwt"
	"LuckyChat/pkg/response"

	"github.com/gin-gonic/gin"
)

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		// 快过期时顺手续一个新 token，前端从响应头换上
		if time.Until(claims.ExpiresAt.Time) < 10*time.Minute {
			newToken, _ := jwt.GenerateToken(
				secret,
				claims.UserID,
				claims.Username,
				"access",
				24*time.Hour,
			)
			c.Header("X-New-Access-Token", newToken)
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}
