package middleware

import (
	"net/http"
	"strings"

	"clipchain/pkg/context"
	"clipchain/pkg/jwt"
	"clipchain/pkg/log"
	"clipchain/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth 解析 Bearer token 并把 fid 写入上下文。
// required 为 false 时缺少 token 直接放行，由 handler 使用请求参数中的 fid。
func Auth(secret []byte, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				response.Abort(c, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "malformed Authorization header")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
		if err != nil {
			log.L.Debug("token rejected", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		fid, err := claims.Fid()
		if err != nil || fid == 0 {
			response.Abort(c, http.StatusUnauthorized, "invalid token subject")
			return
		}
		c.Set(context.CtxFid, fid)

		c.Next()
	}
}
