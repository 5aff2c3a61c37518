package chain

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
)

// Recorder 持久化每次提交尝试的轨迹。
// 提交即落一行 pending，终结时更新。超时不更新，
// 留给对账任务继续查。
type Recorder interface {
	Submitted(ctx context.Context, tx *model.ChainTransaction) error
	Settled(ctx context.Context, hash string, result *SubmissionResult) error
}

// GormRecorder 是 Recorder 的数据库实现
type GormRecorder struct {
	db *gorm.DB
}

var _ Recorder = (*GormRecorder)(nil)

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

// Submitted 落一行 pending 记录。
// Hash 撞唯一索引时静默跳过: DUPLICATE 的重复提交不产生新行。
func (r *GormRecorder) Submitted(ctx context.Context, tx *model.ChainTransaction) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash"}},
			DoNothing: true,
		}).
		Create(tx).Error
	if err != nil {
		return fmt.Errorf("记录链上交易失败: %w", err)
	}
	return nil
}

// Settled 把终态写回交易记录
func (r *GormRecorder) Settled(ctx context.Context, hash string, result *SubmissionResult) error {
	status := model.ChainTxStatusFailed
	if result.Status == StatusSuccess {
		status = model.ChainTxStatusSuccess
	}
	err := r.db.WithContext(ctx).
		Model(&model.ChainTransaction{}).
		Where("hash = ?", hash).
		Updates(map[string]interface{}{
			"status":       status,
			"ledger":       result.Ledger,
			"return_value": result.ReturnValue,
			"error_detail": result.ErrorDetail,
		}).Error
	if err != nil {
		return fmt.Errorf("更新链上交易终态失败: %w", err)
	}
	return nil
}
