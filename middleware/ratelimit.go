package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"clipchain/pkg/context"
	"clipchain/pkg/log"
	"clipchain/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// 超过该数量时整体重建，避免 map 无限增长
const maxLimiters = 10000

// RateLimiter 按 fid 限流，未登录时按客户端 IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if fid, ok := context.GetFid(c); ok {
			key = "fid:" + strconv.FormatUint(fid, 10)
		}
		if !rl.limiter(key).Allow() {
			log.L.Warn("rate limit exceeded", zap.String("key", key), zap.String("path", c.FullPath()))
			response.Abort(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
