package chain

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
	"github.com/0xdevcollins/boundless-sub003/pkg/monitor"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// Pipeline 把 构造 → 签名 → 提交 → 确认 串成一次完整的调用。
// 同一条流水线同时只允许一笔在途交易 (TryLock)，
// 并发的第二笔立即失败，不排队。
type Pipeline struct {
	mu          sync.Mutex
	builder     *Builder
	coordinator *Coordinator
	submitter   *Submitter
	recorder    Recorder // 可为 nil (CLI 场景不落库)
	network     soroban.Network
}

func NewPipeline(b *Builder, c *Coordinator, s *Submitter, r Recorder, network soroban.Network) *Pipeline {
	return &Pipeline{
		builder:     b,
		coordinator: c,
		submitter:   s,
		recorder:    r,
		network:     network,
	}
}

// Invoke 执行一次合约调用直到终态。
// 返回的 SubmissionResult 永远是终态之一:
// success / failed / rejected / timed_out，没有 pending。
// 失败时 result 和 error 同时返回，error 用于分类，result 带细节。
func (p *Pipeline) Invoke(ctx context.Context, call Call) (*SubmissionResult, error) {
	if !p.mu.TryLock() {
		return nil, ErrAttemptInFlight
	}
	defer p.mu.Unlock()

	// 1. 构造信封 (无会话时在这里就终止，不碰签名方和节点)
	env, err := p.builder.Build(ctx, call)
	if err != nil {
		return nil, err
	}

	// 2. 递交签名
	signedEnvelope, hash, err := p.coordinator.Sign(ctx, env)
	if err != nil {
		return nil, err
	}

	result := &SubmissionResult{
		Hash:           hash,
		Function:       call.Function,
		Source:         env.SourceAccount,
		SequenceNumber: env.SequenceNumber,
	}

	// 3. 提交
	start := time.Now()
	monitor.Business.TxSubmittedTotal.WithLabelValues(call.Function).Inc()

	sendResult, err := p.submitter.Submit(ctx, signedEnvelope)
	if err != nil {
		if errors.Is(err, ErrSubmissionRejected) {
			// 入队即被拒，链上不会有这笔交易
			result.Status = StatusRejected
			result.ErrorDetail = err.Error()
			monitor.Business.TxConfirmedTotal.WithLabelValues(string(StatusRejected)).Inc()
			return result, err
		}
		return nil, err
	}

	if sendResult.Status == soroban.SendStatusDuplicate {
		logger.Info("交易已在队列中，进入确认轮询", zap.String("hash", hash))
	}
	p.record(ctx, env, call, hash)

	// 4. 轮询确认
	txResult, attempts, err := p.submitter.Confirm(ctx, hash)
	result.Attempts = attempts
	if err != nil {
		if errors.Is(err, ErrConfirmTimeout) {
			// 本次尝试超时，数据库记录保持 pending 交给对账任务
			result.Status = StatusTimedOut
			result.ErrorDetail = err.Error()
			monitor.Business.TxConfirmedTotal.WithLabelValues(string(StatusTimedOut)).Inc()
			return result, err
		}
		return nil, err
	}

	monitor.Business.TxConfirmDuration.WithLabelValues(string(p.network)).Observe(time.Since(start).Seconds())

	switch txResult.Status {
	case soroban.TxStatusSuccess:
		result.Status = StatusSuccess
		result.Ledger = txResult.Ledger
		result.ReturnValue = txResult.ReturnValue
		monitor.Business.TxConfirmedTotal.WithLabelValues(string(StatusSuccess)).Inc()
		p.settle(ctx, hash, result)
		logger.Info("交易确认成功",
			zap.String("hash", hash),
			zap.String("function", call.Function),
			zap.Uint64("ledger", txResult.Ledger),
			zap.Int("attempts", attempts))
		return result, nil
	default:
		result.Status = StatusFailed
		result.Ledger = txResult.Ledger
		result.ErrorDetail = DecodeContractError(txResult.ResultError)
		monitor.Business.TxConfirmedTotal.WithLabelValues(string(StatusFailed)).Inc()
		p.settle(ctx, hash, result)
		logger.Warn("交易执行失败",
			zap.String("hash", hash),
			zap.String("function", call.Function),
			zap.String("detail", result.ErrorDetail))
		return result, ErrTransactionFailed
	}
}

// record 落 pending 记录，失败只告警不阻断确认流程
func (p *Pipeline) record(ctx context.Context, env *soroban.UnsignedEnvelope, call Call, hash string) {
	if p.recorder == nil {
		return
	}
	tx := &model.ChainTransaction{
		Hash:           hash,
		Function:       call.Function,
		Source:         env.SourceAccount,
		Network:        string(p.network),
		Status:         model.ChainTxStatusPending,
		SequenceNumber: env.SequenceNumber,
		Fee:            FromUnits(uint64(env.Fee)),
	}
	if err := p.recorder.Submitted(ctx, tx); err != nil {
		logger.Error("记录在途交易失败", zap.String("hash", hash), zap.Error(err))
	}
}

// settle 写回终态，失败只告警 (对账任务会重放)
func (p *Pipeline) settle(ctx context.Context, hash string, result *SubmissionResult) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Settled(ctx, hash, result); err != nil {
		logger.Error("更新交易终态失败", zap.String("hash", hash), zap.Error(err))
	}
}
