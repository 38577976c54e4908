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

type Credits struct {
	Ledger service.ILedgerService
	Config *config.Config
}

func (h *Credits) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Config.Jwt.Required)
	g := r.Group("/v1", authorize)
	g.GET("/credits", context.Wrap(h.Credits))
	g.GET("/credits/transactions", context.Wrap(h.Transactions))
	g.POST("/credits/spend", context.Wrap(h.Spend))

	g.GET("/daily-reward", context.Wrap(h.DailyRewardStatus))
	g.POST("/daily-reward", context.Wrap(h.ClaimDailyReward))

	g.GET("/login-streak", context.Wrap(h.LoginStreakStatus))
	g.POST("/login-streak", context.Wrap(h.AdvanceLoginStreak))

	g.GET("/generation-streak", context.Wrap(h.GenerationCount))
	g.POST("/generation-streak", context.Wrap(h.RecordGeneration))

	g.POST("/free-generation/use", context.Wrap(h.UseFreeGeneration))
}

// Credits 查询余额，首次访问自动开户
func (h *Credits) Credits(c *gin.Context) error {
	var req types.CreditsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	fid, err := context.ResolveFid(c, req.Fid)
	if err != nil {
		return bizError(err)
	}

	acc, isNew, err := h.Ledger.GetOrCreate(c.Request.Context(), fid, req.Wallet)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.CreditsResp{
		Credits:         acc.CreditBalance,
		Streak:          acc.CurrentStreak,
		LongestStreak:   acc.LongestStreak,
		TotalVideos:     acc.TotalVideosCreated,
		FreeGenerations: acc.FreeGenerations,
		IsNewUser:       isNew,
		User: types.CreditsUser{
			Fid:     acc.Fid,
			Wallet:  acc.Wallet(),
			Credits: acc.CreditBalance,
			Streak:  acc.CurrentStreak,
		},
	})
	return nil
}

func (h *Credits) Transactions(c *gin.Context) error {
	var req types.ListCreditRecordsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	fid, err := context.ResolveFid(c, req.Fid)
	if err != nil {
		return bizError(err)
	}
	resp, err := h.Ledger.ListTransactions(c.Request.Context(), fid, req.Action, req.Cursor, req.Limit)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) Spend(c *gin.Context) error {
	var req types.SpendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	fid, err := context.ResolveFid(c, req.Fid)
	if err != nil {
		return bizError(err)
	}
	resp, err := h.Ledger.Spend(c.Request.Context(), fid, req.GenerationType)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) DailyRewardStatus(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	resp, err := h.Ledger.DailyRewardStatus(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) ClaimDailyReward(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	resp, err := h.Ledger.ClaimDailyConnectionReward(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) LoginStreakStatus(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	resp, err := h.Ledger.LoginStreakStatus(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) AdvanceLoginStreak(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	resp, err := h.Ledger.AdvanceLoginStreak(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) GenerationCount(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	resp, err := h.Ledger.GenerationCountStatus(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) RecordGeneration(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	resp, err := h.Ledger.RecordGeneration(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Credits) UseFreeGeneration(c *gin.Context) error {
	fid, err := bindFid(c)
	if err != nil {
		return err
	}
	left, err := h.Ledger.UseFreeGeneration(c.Request.Context(), fid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.FreeGenerationResp{RemainingFreeGenerations: left})
	return nil
}
