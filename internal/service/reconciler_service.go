package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/internal/service/chain"
	"github.com/0xdevcollins/boundless-sub003/internal/service/mq"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
	"github.com/0xdevcollins/boundless-sub003/pkg/monitor"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
	"github.com/0xdevcollins/boundless-sub003/pkg/utils/lock"
)

const (
	reconcileLockKey = "chain:reconcile"
	reconcileLockTTL = 5 * time.Minute
	// 提交后至少等这么久才轮到对账任务碰它，
	// 避开还在确认窗口里的交易
	reconcileMinAge = 2 * time.Minute
	// 追到这个年龄还查不到就按失败结案
	reconcileMaxAge    = 24 * time.Hour
	reconcileBatchSize = 100
)

// ReconcilerService 定时清点超时遗留的 pending 交易。
// 确认窗口内没等到终态的交易由它继续追查:
// 查到终态就结案，追太久查不到的按失败收尾。
// 多实例部署时靠分布式锁保证同一时刻只有一个在跑。
type ReconcilerService struct {
	db     *gorm.DB
	rpc    soroban.Client
	locker lock.DistributedLock
	cron   *cron.Cron
	spec   string
}

func NewReconcilerService(db *gorm.DB, rpc soroban.Client, locker lock.DistributedLock, spec string) *ReconcilerService {
	return &ReconcilerService{
		db:     db,
		rpc:    rpc,
		locker: locker,
		cron:   cron.New(),
		spec:   spec,
	}
}

// Start 注册定时任务并启动调度器
func (s *ReconcilerService) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("交易对账任务已启动", zap.String("spec", s.spec))
	return nil
}

// Stop 停止调度器，等待在跑的任务结束
func (s *ReconcilerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// runOnce 执行一轮对账
func (s *ReconcilerService) runOnce(ctx context.Context) {
	acquired, err := s.locker.Acquire(ctx, reconcileLockKey, reconcileLockTTL)
	if err != nil {
		logger.Error("获取对账锁失败", zap.Error(err))
		return
	}
	if !acquired {
		logger.Debug("对账任务已在其他实例上运行，跳过")
		return
	}
	defer func() {
		if err := s.locker.Release(ctx, reconcileLockKey); err != nil {
			logger.Warn("释放对账锁失败", zap.Error(err))
		}
	}()

	var stale []model.ChainTransaction
	err = s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.ChainTxStatusPending, time.Now().Add(-reconcileMinAge)).
		Order("created_at ASC").
		Limit(reconcileBatchSize).
		Find(&stale).Error
	if err != nil {
		logger.Error("扫描在途交易失败", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	logger.Info("开始对账", zap.Int("pending", len(stale)))
	for i := range stale {
		s.reconcileOne(ctx, &stale[i])
	}
}

// reconcileOne 追查单笔在途交易
func (s *ReconcilerService) reconcileOne(ctx context.Context, tx *model.ChainTransaction) {
	result, err := s.rpc.GetTransaction(ctx, tx.Hash)
	if err != nil {
		logger.Warn("对账查询失败", zap.String("hash", tx.Hash), zap.Error(err))
		return
	}

	switch result.Status {
	case soroban.TxStatusSuccess:
		s.settle(ctx, tx, model.ChainTxStatusSuccess, result.Ledger, result.ReturnValue, "")
	case soroban.TxStatusFailed:
		s.settle(ctx, tx, model.ChainTxStatusFailed, result.Ledger, "", chain.DecodeContractError(result.ResultError))
	case soroban.TxStatusNotFound:
		// 信封的 timeout 早就过了还查不到，基本可以断定没进账本
		if time.Since(tx.CreatedAt) > reconcileMaxAge {
			s.settle(ctx, tx, model.ChainTxStatusFailed, 0, "", "对账超期，交易未落账")
		}
	}
}

func (s *ReconcilerService) settle(ctx context.Context, tx *model.ChainTransaction, status string, ledger uint64, returnValue, errorDetail string) {
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		err := db.Model(&model.ChainTransaction{}).
			Where("hash = ? AND status = ?", tx.Hash, model.ChainTxStatusPending).
			Updates(map[string]interface{}{
				"status":       status,
				"ledger":       ledger,
				"return_value": returnValue,
				"error_detail": errorDetail,
			}).Error
		if err != nil {
			return err
		}
		// 结案也是领域事件，下游据此修正自己的视图
		return model.CreateOutboxMessage(db, mq.TopicChainTxEvents, tx.Hash, map[string]interface{}{
			"type":     "chain.tx.settled",
			"hash":     tx.Hash,
			"function": tx.Function,
			"status":   status,
		})
	})
	if err != nil {
		logger.Error("对账结案失败", zap.String("hash", tx.Hash), zap.Error(err))
		return
	}

	monitor.Business.ReconcileSettleTotal.WithLabelValues(status).Inc()
	logger.Info("对账结案",
		zap.String("hash", tx.Hash),
		zap.String("function", tx.Function),
		zap.String("status", status))
}
