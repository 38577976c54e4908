package context

import (
	"clipchain/pkg/log"
	"clipchain/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxFid = "fid"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.FailWithData(c, be.Code, be.Msg, be.Data)
				return
			}
			log.L.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
	}
}

// GetFid 取 token 中的 fid，未登录返回 false
func GetFid(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(CtxFid)
	if !ok {
		return 0, false
	}
	fid, ok := v.(uint64)
	return fid, ok
}

var ErrFidMismatch = errors.New("fid does not match token")

// ResolveFid 请求里的 fid 必须与 token 一致；无 token 时直接信任请求参数
func ResolveFid(c *gin.Context, requested uint64) (uint64, error) {
	tokenFid, ok := GetFid(c)
	if !ok {
		return requested, nil
	}
	if requested != 0 && requested != tokenFid {
		return 0, ErrFidMismatch
	}
	return tokenFid, nil
}
