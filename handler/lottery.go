package handler

import (
	"Focus/config"
	"Focus/middleware"
	"Focus/pkg/context"
	"Focus/pkg/response"
	"Focus/service"
	"Focus/types"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type Lottery struct {
	Config         *config.Config
	LotteryService service.ILotteryService
}

func (h *Lottery) RegisterRouter(r gin.IRouter) {
	lottery := r.Group("/v1/lottery")
	lottery.GET("/tiers", context.Wrap(h.Tiers))

	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	lottery.POST("/draw", authorize, context.Wrap(h.Draw))
	lottery.GET("/records", authorize, context.Wrap(h.Records))
}

func (h *Lottery) Draw(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}

	var req types.DrawLotteryReq
	// 允许空请求体
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return response.NewError(CodeValidation, err.Error())
	}
	cost := req.CostFragments
	if cost == 0 {
		cost = h.Config.Reward.LotteryCost
	}

	record, err := h.LotteryService.Draw(c.Request.Context(), uid, cost)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, service.ToLotteryResult(record))
	return nil
}

func (h *Lottery) Records(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}
	var req types.ListCursorReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(CodeValidation, err.Error())
	}

	resp, err := h.LotteryService.ListRecords(c.Request.Context(), uid, req.Cursor, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Lottery) Tiers(c *gin.Context) error {
	response.Success(c, h.LotteryService.Tiers())
	return nil
}
