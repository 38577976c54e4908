package handler

import (
	"clipchain/pkg/context"
	"clipchain/pkg/response"
	"clipchain/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bizError 把 service 层错误映射为对应 HTTP 状态码，未识别的错误原样返回按 500 处理
func bizError(err error) error {
	var genErr *service.GenerationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &genErr):
		return response.NewError(http.StatusBadGateway, genErr.Error()).WithData(genErr.Failure)
	case errors.Is(err, context.ErrFidMismatch):
		return response.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrRefundNotFound):
		return response.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPaymentRequired):
		return response.NewError(http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrProfileUnavailable):
		return response.NewError(http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrInvalidFid),
		errors.Is(err, service.ErrInsufficientCredits),
		errors.Is(err, service.ErrNoFreeGenerations),
		errors.Is(err, service.ErrFreeGenerationCap),
		errors.Is(err, service.ErrInvalidGenerationType),
		errors.Is(err, service.ErrPromptRequired),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrTemplateInvalid),
		errors.Is(err, service.ErrInvalidRefund),
		errors.Is(err, service.ErrInvalidWallet):
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	return err
}

func badRequest(err error) error {
	return response.NewError(http.StatusBadRequest, err.Error())
}

// bindFid fid 可以放在 query 或 JSON body 里
func bindFid(c *gin.Context) (uint64, error) {
	var req struct {
		Fid uint64 `form:"fid" json:"fid"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return 0, badRequest(err)
	}
	if req.Fid == 0 && c.Request.Method != http.MethodGet && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return 0, badRequest(err)
		}
	}
	fid, err := context.ResolveFid(c, req.Fid)
	if err != nil {
		return 0, bizError(err)
	}
	if fid == 0 {
		return 0, bizError(service.ErrInvalidFid)
	}
	return fid, nil
}
