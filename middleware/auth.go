package middleware

import (
	"Focus/pkg/context"
	"Focus/pkg/jwt"
	"Focus/pkg/response"
	"net/http"
	"strings"

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

		claims, err := jwt.ParseToken(secret, jwt.TokenAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "token 无效或已过期")
			return
		}
		if claims.UserID == 0 {
			response.Abort(c, http.StatusUnauthorized, "token 缺少用户信息")
			return
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Next()
	}
}
