package chain

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// sendMaxAttempts 限制入队阶段对 TRY_AGAIN_LATER 的重试次数
const sendMaxAttempts = 3

// Submitter 提交签名信封并轮询确认，直到终态或窗口耗尽。
// 轮询次数和间隔都有上界，永远不会无限等待。
type Submitter struct {
	rpc         soroban.Client
	maxAttempts int
	interval    time.Duration
}

func NewSubmitter(rpc soroban.Client, maxAttempts int, interval time.Duration) *Submitter {
	return &Submitter{rpc: rpc, maxAttempts: maxAttempts, interval: interval}
}

// Submit 把签名信封递交给节点。
// PENDING 和 DUPLICATE 都算入队成功 (DUPLICATE 说明之前已经进去了)，
// TRY_AGAIN_LATER 做有限次退避重试，ERROR 立即拒绝。
func (s *Submitter) Submit(ctx context.Context, signedEnvelope string) (*soroban.SendResult, error) {
	var last *soroban.SendResult
	for attempt := 1; attempt <= sendMaxAttempts; attempt++ {
		result, err := s.rpc.SendTransaction(ctx, signedEnvelope)
		if err != nil {
			return nil, fmt.Errorf("提交交易失败: %w", err)
		}
		last = result

		switch result.Status {
		case soroban.SendStatusPending, soroban.SendStatusDuplicate:
			return result, nil
		case soroban.SendStatusError:
			return nil, fmt.Errorf("%w: %s", ErrSubmissionRejected, result.ErrorResult)
		case soroban.SendStatusTryAgainLater:
			logger.Warn("节点要求稍后重试",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", sendMaxAttempts))
			if attempt < sendMaxAttempts {
				if err := sleepCtx(ctx, s.interval); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("%w: 未知的提交状态 %q", ErrSubmissionRejected, result.Status)
		}
	}
	return nil, fmt.Errorf("%w: 节点持续繁忙 (%s)", ErrSubmissionRejected, last.Status)
}

// Confirm 按哈希轮询交易终态。
// 返回的 attempts 记录实际轮询次数; 窗口耗尽返回 ErrConfirmTimeout，
// 此时交易可能仍会落账，由对账任务兜底。
func (s *Submitter) Confirm(ctx context.Context, hash string) (*soroban.TxResult, int, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result, err := s.rpc.GetTransaction(ctx, hash)
		if err != nil {
			// 单次查询失败不终止轮询，窗口内继续
			logger.Warn("查询交易状态失败",
				zap.String("hash", hash),
				zap.Int("attempt", attempt),
				zap.Error(err))
		} else {
			switch result.Status {
			case soroban.TxStatusSuccess, soroban.TxStatusFailed:
				return result, attempt, nil
			case soroban.TxStatusNotFound:
				// 还没进账本，继续等
			default:
				logger.Warn("未知的交易状态", zap.String("status", result.Status))
			}
		}

		if attempt < s.maxAttempts {
			if err := sleepCtx(ctx, s.interval); err != nil {
				return nil, attempt, err
			}
		}
	}
	return nil, s.maxAttempts, fmt.Errorf("%w: %d 次轮询后仍未终结 (hash=%s)", ErrConfirmTimeout, s.maxAttempts, hash)
}

// sleepCtx 可被 ctx 取消的休眠
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
