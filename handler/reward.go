package handler

import (
	"Focus/config"
	"Focus/middleware"
	"Focus/pkg/context"
	"Focus/pkg/response"
	"Focus/service"
	"Focus/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type Reward struct {
	Config            *config.Config
	RedemptionService service.IRedemptionService
}

func (h *Reward) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	reward := r.Group("/v1/rewards")
	reward.Use(authorize)
	reward.GET("", context.Wrap(h.Catalog))
	reward.POST("/:id/redeem", context.Wrap(h.Redeem))
	reward.GET("/redemptions", context.Wrap(h.Redemptions))
}

func (h *Reward) Catalog(c *gin.Context) error {
	items, err := h.RedemptionService.Catalog(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Reward) Redeem(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}
	rewardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rewardID == 0 {
		return response.NewError(CodeValidation, "奖励ID错误")
	}

	receipt, err := h.RedemptionService.Redeem(c.Request.Context(), service.RedeemRequest{
		UserID:         uid,
		RewardID:       rewardID,
		IdempotencyKey: c.GetHeader(HeaderIdempotencyKey),
	})
	if err != nil {
		return bizError(err)
	}
	response.Success(c, receipt)
	return nil
}

func (h *Reward) Redemptions(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}
	var req types.ListCursorReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(CodeValidation, err.Error())
	}

	resp, err := h.RedemptionService.ListRedemptions(c.Request.Context(), uid, req.Cursor, req.Limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
