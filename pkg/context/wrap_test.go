package context

import (
	"Focus/pkg/response"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func serve(h func(*gin.Context) error, setup ...gin.HandlerFunc) (int, gjson.Result) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(setup, Wrap(h))
	r.GET("/t", handlers...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	return w.Code, gjson.Parse(w.Body.String())
}

func TestWrap_BizError(t *testing.T) {
	code, body := serve(func(c *gin.Context) error {
		return response.NewError(4001, "碎片余额不足")
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(4001), body.Get("code").Int())
	assert.Equal(t, "碎片余额不足", body.Get("msg").String())
}

func TestWrap_UnknownError(t *testing.T) {
	code, body := serve(func(c *gin.Context) error {
		return errors.New("db down")
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, int64(500), body.Get("code").Int())
	assert.NotContains(t, body.Get("msg").String(), "db down")
}

func TestWrap_Success(t *testing.T) {
	code, body := serve(func(c *gin.Context) error {
		response.Success(c, gin.H{"balance": 3})
		return nil
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(0), body.Get("code").Int())
	assert.Equal(t, int64(3), body.Get("data.balance").Int())
}

func TestGetUserID(t *testing.T) {
	setUser := func(v any) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set(CtxUserID, v) }
	}

	var got uint64
	_, _ = serve(func(c *gin.Context) error {
		uid, err := GetUserID(c)
		got = uid
		return err
	}, setUser(uint64(9)))
	assert.Equal(t, uint64(9), got)

	code, _ := serve(func(c *gin.Context) error {
		_, err := GetUserID(c)
		return err
	}, setUser("9"))
	assert.Equal(t, http.StatusInternalServerError, code, "类型错误")

	code, _ = serve(func(c *gin.Context) error {
		_, err := GetUserID(c)
		return err
	})
	assert.Equal(t, http.StatusInternalServerError, code)
}
