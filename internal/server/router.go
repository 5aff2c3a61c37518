package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/0xdevcollins/boundless-sub003/docs/swagger" // swagger 文档注册

	"github.com/0xdevcollins/boundless-sub003/internal/handler"
	"github.com/0xdevcollins/boundless-sub003/internal/service"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/config"
	"github.com/0xdevcollins/boundless-sub003/pkg/monitor"
)

// NewRouter 装配所有路由
func NewRouter(projects *service.ProjectService, walletMgr *wallet.Manager) *gin.Engine {
	if config.Global.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(monitor.PrometheusMiddleware())

	// 系统路由
	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	projectHandler := handler.NewProjectHandler(projects)
	walletHandler := handler.NewWalletHandler(walletMgr)

	api := r.Group("/api/v1")
	{
		// 钱包会话
		w := api.Group("/wallet")
		{
			w.POST("/connect", walletHandler.Connect)
			w.POST("/disconnect", walletHandler.Disconnect)
			w.GET("/status", walletHandler.Status)
		}

		// 只读查询不需要会话
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)
		api.GET("/projects/:id/transactions", projectHandler.Transactions)

		// 写操作全部要求活跃会话
		signed := api.Group("/projects", RequireWallet(walletMgr))
		{
			signed.POST("", projectHandler.Create)
			signed.POST("/:id/fund", projectHandler.Fund)
			signed.POST("/:id/vote", projectHandler.Vote)
			signed.DELETE("/:id/vote", projectHandler.WithdrawVote)
			signed.POST("/:id/milestones/:number/approve", projectHandler.ApproveMilestone)
			signed.POST("/:id/milestones/:number/reject", projectHandler.RejectMilestone)
			signed.POST("/:id/milestones/:number/release", projectHandler.ReleaseMilestone)
			signed.POST("/:id/refund", projectHandler.Refund)
			signed.POST("/:id/close", projectHandler.Close)
		}
	}

	return r
}
