package handler

import (
	"clipchain/pkg/context"
	"clipchain/pkg/response"
	"clipchain/service"
	"clipchain/types"

	"github.com/gin-gonic/gin"
)

type Leaderboard struct {
	LeaderboardService service.ILeaderboardService
}

func (h *Leaderboard) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/leaderboard", context.Wrap(h.Top))
}

func (h *Leaderboard) Top(c *gin.Context) error {
	var req types.LeaderboardReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := h.LeaderboardService.Top(c.Request.Context(), req.By, req.Limit)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}
