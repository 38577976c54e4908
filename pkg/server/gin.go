package server

import (
	"clipchain/config"
	"clipchain/middleware"
	"clipchain/pkg/log"
	"clipchain/pkg/rocketmq"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider struct {
	Config    *config.Config
	Engine    *gin.Engine
	Publisher *rocketmq.Publisher
}

func getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		// 排除回环地址
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	return "", errors.New("no ip address found")
}

// serverID 格式为 192.168.1.10:8080
func serverID(port int) string {
	ip, err := getLocalIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("%s:%d", ip, port)
}

func NewGinEngine(h *Handlers, conf *config.Config) *gin.Engine {
	if !conf.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(CORSMiddleware(conf.App.AllowOrigin))
	r.Use(middleware.GinZap(), middleware.PrometheusMiddleware("/metrics", "/healthz"), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	h.Credits.RegisterRouter(api)
	h.Templates.RegisterRouter(api)
	h.Generate.RegisterRouter(api)
	h.Leaderboard.RegisterRouter(api)
	return r
}

func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Length, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		// 预检请求直接返回 204
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	// 终止信号
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	sid := serverID(app.Config.Server.Http)
	log.L.Info("server starting", zap.String("serverId", sid),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
		zap.Bool("memoryStore", app.Config.MemoryStore()),
	)

	return run(c, eg, groupCtx, app, sid)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider, sid string) error {
	serv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动 http 服务
	eg.Go(func() error {
		err := serv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("serverId", sid))

			// 等待进行中的请求结束
			timeCtx, timeCancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Info("server stopping", zap.String("serverId", sid), zap.Error(err))
			}
			if err := app.Publisher.Shutdown(); err != nil {
				log.L.Warn("producer shutdown", zap.Error(err))
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.L.Info("server stopping", zap.Error(err))
	}

	log.L.Info("server stopped", zap.String("serverId", sid))

	return nil
}
