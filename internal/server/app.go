package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// App 聚合 HTTP 服务和需要随进程优雅退出的后台组件
type App struct {
	httpServer *http.Server
	cleanups   []func()
}

func NewApp(router *gin.Engine, addr string) *App {
	return &App{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// OnShutdown 注册退出时的清理函数，按注册顺序执行
func (a *App) OnShutdown(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

// Run 启动服务并阻塞，收到 SIGINT/SIGTERM 后优雅退出
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务启动", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("收到退出信号，开始优雅关闭", zap.String("signal", sig.String()))
	}

	// 1. 先停 HTTP，不再接新请求
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP 服务关闭异常", zap.Error(err))
	}

	// 2. 再按顺序清理后台组件
	for _, fn := range a.cleanups {
		fn()
	}

	logger.Info("服务已退出")
	return nil
}
