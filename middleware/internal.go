package middleware

import (
	"Focus/pkg/response"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const HeaderInternalToken = "X-Internal-Token"

// Internal 服务间调用鉴权，token 未配置时拒绝所有请求
func Internal(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderInternalToken)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Abort(c, http.StatusForbidden, "禁止访问")
			return
		}
		c.Next()
	}
}
