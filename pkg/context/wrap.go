package context

import (
	"Focus/pkg/log"
	"Focus/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				c.JSON(http.StatusOK, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
				})
				return
			}
			log.L.Error("unhandled handler error", zap.String("path", c.FullPath()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  "系统繁忙，请稍后再试",
			})
		}
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(uint64)
	if !ok || uid == 0 {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}
