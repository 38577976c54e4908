package handler

import (
	"clipchain/config"
	"clipchain/middleware"
	"clipchain/pkg/context"
	"clipchain/pkg/response"
	"clipchain/service"
	"clipchain/types"

	"github.com/gin-gonic/gin"
)

type Generate struct {
	Gate   service.IGenerationGate
	Config *config.Config
}

func (h *Generate) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Config.Jwt.Required)
	limiter := middleware.NewRateLimiter(h.Config.Server.GenerateRate, h.Config.Server.GenerateBurst)
	r.POST("/v1/generate", authorize, limiter.Handler(), context.Wrap(h.Generate))
}

// Generate 失败时 data 里带上退款/返还信息
func (h *Generate) Generate(c *gin.Context) error {
	var req types.GenerateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	fid, err := context.ResolveFid(c, req.Fid)
	if err != nil {
		return bizError(err)
	}
	req.Fid = fid

	resp, err := h.Gate.Generate(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}
