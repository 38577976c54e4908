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

type Templates struct {
	TemplateService service.ITemplateService
	Config          *config.Config
}

func (h *Templates) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret), h.Config.Jwt.Required)
	g := r.Group("/v1/templates")
	g.GET("/trending", context.Wrap(h.Trending))
	g.GET("/by-creator", context.Wrap(h.ByCreator))
	g.POST("/save", authorize, context.Wrap(h.Save))
	g.POST("/use", authorize, context.Wrap(h.Use))
}

func (h *Templates) Save(c *gin.Context) error {
	var req types.SaveTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	fid, err := context.ResolveFid(c, req.CreatorFid)
	if err != nil {
		return bizError(err)
	}
	req.CreatorFid = fid

	tpl, err := h.TemplateService.Save(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, gin.H{"template": tpl})
	return nil
}

func (h *Templates) Trending(c *gin.Context) error {
	var req types.TrendingReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := h.TemplateService.ListTrending(c.Request.Context(), req.Limit)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Templates) ByCreator(c *gin.Context) error {
	var req types.CreatorTemplatesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	list, err := h.TemplateService.ListByCreator(c.Request.Context(), req.Fid, req.Limit)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, gin.H{"templates": list, "count": len(list)})
	return nil
}

// Use 记录失败不影响返回
func (h *Templates) Use(c *gin.Context) error {
	var req types.UseTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	fid, err := context.ResolveFid(c, req.UserFid)
	if err != nil {
		return bizError(err)
	}
	req.UserFid = fid

	if err := h.TemplateService.RecordUse(c.Request.Context(), &req); err != nil {
		return bizError(err)
	}
	response.Success(c, gin.H{"success": true})
	return nil
}
