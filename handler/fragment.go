package handler

import (
	"Focus/config"
	"Focus/middleware"
	"Focus/models"
	"Focus/pkg/context"
	"Focus/pkg/response"
	"Focus/service"
	"Focus/types"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Fragment struct {
	Config            *config.Config
	LedgerService     service.ILedgerService
	StatisticsService service.IStatisticsService
}

func (f *Fragment) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(f.Config.Jwt.Secret))
	fragment := r.Group("/v1/fragments")

	user := fragment.Group("", authorize)
	user.GET("/balance", context.Wrap(f.Balance))
	user.GET("/records", context.Wrap(f.Records))
	user.GET("/stats", context.Wrap(f.Stats))

	internal := fragment.Group("", middleware.Internal(f.Config.App.InternalToken))
	internal.POST("/earn", context.Wrap(f.Earn))
	internal.GET("/reconcile", context.Wrap(f.Reconcile))
}

func (f *Fragment) Balance(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}
	account, err := f.LedgerService.Account(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, account)
	return nil
}

func (f *Fragment) Records(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}

	var req types.ListFragmentRecordsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(CodeValidation, err.Error())
	}
	since, err := parseSince(req.Since)
	if err != nil {
		return err
	}

	resp, err := f.LedgerService.History(c.Request.Context(), uid, service.HistoryQuery{
		Since:  since,
		Action: req.Action,
		Cursor: req.Cursor,
		Limit:  req.Limit,
	})
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (f *Fragment) Stats(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(CodeUnauthorized, err.Error())
	}
	since, err := parseSince(c.Query("since"))
	if err != nil {
		return err
	}
	stats, err := f.StatisticsService.Summary(c.Request.Context(), uid, since)
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}

// Earn 专注、任务等内部服务发放碎片
func (f *Fragment) Earn(c *gin.Context) error {
	var req types.EarnFragmentsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(CodeValidation, err.Error())
	}

	entry, err := f.LedgerService.Credit(c.Request.Context(), service.CreditRequest{
		UserID: req.UserID,
		Amount: req.Amount,
		Type:   models.TransactionType(req.Type),
		Reason: req.Reason,
	})
	if err != nil {
		return bizError(err)
	}
	response.Success(c, gin.H{
		"entry_id": entry.ID,
		"balance":  entry.BalanceAfter,
	})
	return nil
}

func (f *Fragment) Reconcile(c *gin.Context) error {
	uid, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || uid == 0 {
		return response.NewError(CodeValidation, "user_id 参数错误")
	}

	result, err := f.LedgerService.Reconcile(c.Request.Context(), uid)
	if err != nil && service.KindOf(err) != service.KindLedgerConsistency {
		return bizError(err)
	}
	// 不一致时仍返回明细，供人工核对
	response.Success(c, result)
	return nil
}

func parseSince(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, response.NewError(CodeValidation, "since 需为 RFC3339 时间")
	}
	return &t, nil
}
