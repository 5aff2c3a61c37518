package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/internal/server"
	"github.com/0xdevcollins/boundless-sub003/internal/service"
	"github.com/0xdevcollins/boundless-sub003/internal/service/chain"
	"github.com/0xdevcollins/boundless-sub003/internal/service/mq"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/internal/worker"
	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/config"
	"github.com/0xdevcollins/boundless-sub003/pkg/database"
	"github.com/0xdevcollins/boundless-sub003/pkg/keystore"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
	"github.com/0xdevcollins/boundless-sub003/pkg/monitor"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
	"github.com/0xdevcollins/boundless-sub003/pkg/utils/lock"
)

// @title Boundless Chain Gateway API
// @version 1.0
// @description 众筹平台的链上交易网关: 钱包会话、交易构造、签名与确认
// @BasePath /
func main() {
	// 1. 加载配置
	config.Init()

	// 2. 初始化日志
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 3. 初始化监控指标
	monitor.Init()

	// 4. 连接基础设施
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.Global.DB.Host, config.Global.DB.User, config.Global.DB.Password,
		config.Global.DB.Name, config.Global.DB.Port)
	db, err := database.ConnectPostgres(dsn)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}
	redisCache := cache.NewRedisCache(rdb)
	redisLock := lock.NewRedisLock(rdb)

	// 5. 解析链配置并装配签名方
	network, err := soroban.ParseNetwork(config.Global.Chain.Network)
	if err != nil {
		logger.Fatal("链配置错误", zap.Error(err))
	}
	walletSigner, err := buildSigner()
	if err != nil {
		logger.Fatal("签名方初始化失败", zap.Error(err))
	}

	// 6. 钱包会话管理 (重启后从 Redis 恢复上次的会话)
	walletMgr := wallet.NewManager(walletSigner, network, redisCache)
	walletMgr.Restore()

	// 7. 交易流水线: 构造 → 签名 → 提交 → 确认
	rpc := soroban.NewHTTPClient(config.Global.Chain.RpcUrl, 30*time.Second)
	pipeline := chain.NewPipeline(
		chain.NewBuilder(rpc, walletMgr, config.Global.Chain.ContractAddress, network,
			config.Global.Chain.BaseFee, config.Global.Chain.TimeoutSeconds),
		chain.NewCoordinator(walletSigner, network),
		chain.NewSubmitter(rpc, config.Global.Chain.ConfirmMaxAttempts, config.Global.Chain.ConfirmInterval()),
		chain.NewGormRecorder(db),
		network,
	)

	// 8. MQ 与后台组件
	producer, err := mq.NewProducer(rdb)
	if err != nil {
		logger.Fatal("MQ 初始化失败", zap.Error(err))
	}

	workerClient := worker.NewClient()
	projects := service.NewProjectService(db, redisCache, pipeline, walletMgr, workerClient, config.Global.Chain.TokenContract)

	bgCtx, bgCancel := context.WithCancel(context.Background())

	relay := service.NewRelayService(db, producer, 2*time.Second)
	go relay.Start(bgCtx)

	reconciler := service.NewReconcilerService(db, rpc, redisLock, config.Global.Chain.ReconcileSpec)
	if err := reconciler.Start(); err != nil {
		logger.Fatal("对账任务启动失败", zap.Error(err))
	}

	consumer, err := mq.NewConsumer(rdb, "boundless-server")
	if err != nil {
		logger.Fatal("MQ 消费者初始化失败", zap.Error(err))
	}
	eventConsumer := service.NewEventConsumerService(db, consumer)
	go eventConsumer.Start(bgCtx)

	asynqSrv, asynqMux := worker.NewServer(db)
	go func() {
		if err := asynqSrv.Run(asynqMux); err != nil {
			logger.Error("后台任务处理器退出", zap.Error(err))
		}
	}()

	// 9. HTTP 服务
	router := server.NewRouter(projects, walletMgr)
	app := server.NewApp(router, ":"+config.Global.App.HttpPort)
	app.OnShutdown(func() { bgCancel() })
	app.OnShutdown(reconciler.Stop)
	app.OnShutdown(asynqSrv.Shutdown)
	app.OnShutdown(func() { _ = workerClient.Close() })
	app.OnShutdown(func() { _ = producer.Close() })
	app.OnShutdown(func() { _ = consumer.Close() })

	if err := app.Run(); err != nil {
		logger.Fatal("服务异常退出", zap.Error(err))
	}
}

// buildSigner 按配置选择签名方:
// 配了签名桥就走桥 (持有人逐笔审批)，
// 否则从助记词或密钥库文件派生本地签名。
func buildSigner() (signer.Signer, error) {
	cfg := config.Global.Wallet
	if cfg.SignerBridgeUrl != "" {
		return signer.NewBridgeSigner(cfg.SignerBridgeUrl, 60*time.Second), nil
	}
	if cfg.Mnemonic != "" {
		return signer.NewLocalSigner(cfg.Mnemonic)
	}

	ks, err := keystore.Load(cfg.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("加载密钥库失败 (可先用 CLI 执行 init): %w", err)
	}
	mnemonic, err := ks.Decrypt(cfg.Password)
	if err != nil {
		return nil, err
	}
	return signer.NewLocalSigner(mnemonic)
}
