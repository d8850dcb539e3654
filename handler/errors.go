package handler

import (
	"Focus/pkg/response"
	"Focus/service"
)

// 业务错误码
const (
	CodeValidation          = 400
	CodeUnauthorized        = 401
	CodeNotFound            = 404
	CodeInternal            = 500
	CodeInsufficientBalance = 4001
	CodeRewardInactive      = 4003
	CodeRewardOutOfStock    = 4009
)

// bizError 把服务层错误映射成响应码，未识别的错误原样返回由 Wrap 记为 500
func bizError(err error) error {
	switch service.KindOf(err) {
	case service.KindValidation:
		return response.NewError(CodeValidation, err.Error())
	case service.KindInsufficientBalance:
		return response.NewError(CodeInsufficientBalance, err.Error())
	case service.KindRewardNotFound:
		return response.NewError(CodeNotFound, err.Error())
	case service.KindRewardInactive:
		return response.NewError(CodeRewardInactive, err.Error())
	case service.KindRewardOutOfStock:
		return response.NewError(CodeRewardOutOfStock, err.Error())
	default:
		return err
	}
}
