package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/internal/service/chain"
	"github.com/0xdevcollins/boundless-sub003/internal/service/mq"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/internal/worker"
	"github.com/0xdevcollins/boundless-sub003/internal/worker/tasks"
	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// ErrProjectNotFound 项目不存在
var ErrProjectNotFound = errors.New("项目不存在")

// ProjectEvent 是写入发件箱的领域事件
type ProjectEvent struct {
	Type       string    `json:"type"`
	ProjectID  string    `json:"project_id"`
	Actor      string    `json:"actor"`
	TxHash     string    `json:"tx_hash"`
	OccurredAt time.Time `json:"occurred_at"`
}

// 领域事件类型
const (
	EventProjectCreated    = "project.created"
	EventProjectFunded     = "project.funded"
	EventProjectVoted      = "project.voted"
	EventVoteWithdrawn     = "project.vote_withdrawn"
	EventMilestoneApproved = "milestone.approved"
	EventMilestoneRejected = "milestone.rejected"
	EventMilestoneReleased = "milestone.released"
	EventProjectRefunded   = "project.refunded"
	EventProjectClosed     = "project.closed"
)

// ProjectService 是项目域的业务入口。
// 流程固定: 链上调用确认成功后，本地状态和领域事件
// 在同一个数据库事务里落地。链上失败时本地不落任何东西。
type ProjectService struct {
	db            *gorm.DB
	cache         cache.Cache
	pipeline      *chain.Pipeline
	wallet        *wallet.Manager
	worker        *worker.Client // 可为 nil (通知降级为跳过)
	tokenContract string         // 出资/退款走的代币合约
}

func NewProjectService(db *gorm.DB, c cache.Cache, p *chain.Pipeline, w *wallet.Manager, wc *worker.Client, tokenContract string) *ProjectService {
	return &ProjectService{db: db, cache: c, pipeline: p, wallet: w, worker: wc, tokenContract: tokenContract}
}

// CreateProject 创建项目: 上链 → 落库 → 发事件
func (s *ProjectService) CreateProject(ctx context.Context, title, description, metadataURI string, goal decimal.Decimal, milestoneCount uint32, deadline time.Time) (*model.Project, *chain.SubmissionResult, error) {
	owner, err := s.wallet.Address()
	if err != nil {
		return nil, nil, err
	}
	goalUnits, err := chain.ToUnits(goal)
	if err != nil {
		return nil, nil, err
	}

	projectID := uuid.NewString()
	result, err := s.pipeline.Invoke(ctx, chain.CreateProject(projectID, owner, metadataURI, goalUnits, milestoneCount))
	if err != nil {
		return nil, result, err
	}

	project := &model.Project{
		ID:             projectID,
		OwnerAddress:   owner,
		Title:          title,
		Description:    description,
		MetadataURI:    metadataURI,
		FundingGoal:    goal,
		Raised:         decimal.Zero,
		MilestoneCount: milestoneCount,
		Status:         model.ProjectStatusActive,
		TxHash:         result.Hash,
		Deadline:       deadline,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("写入项目失败: %w", err)
		}
		return model.CreateOutboxMessage(tx, mq.TopicProjectEvents, projectID, ProjectEvent{
			Type:       EventProjectCreated,
			ProjectID:  projectID,
			Actor:      owner,
			TxHash:     result.Hash,
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		return nil, result, err
	}

	s.notify(owner, result)
	return project, result, nil
}

// FundProject 出资: 上链成功后记录出资并累计筹款额
func (s *ProjectService) FundProject(ctx context.Context, projectID string, amount decimal.Decimal) (*model.Contribution, *chain.SubmissionResult, error) {
	contributor, err := s.wallet.Address()
	if err != nil {
		return nil, nil, err
	}
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	amountUnits, err := chain.ToUnits(amount)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.pipeline.Invoke(ctx, chain.FundProject(projectID, amountUnits, contributor, s.tokenContract))
	if err != nil {
		return nil, result, err
	}

	contribution := &model.Contribution{
		ProjectID:          projectID,
		ContributorAddress: contributor,
		Amount:             amount,
		TxHash:             result.Hash,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return fmt.Errorf("写入出资记录失败: %w", err)
		}
		err := tx.Model(&model.Project{}).
			Where("id = ?", project.ID).
			Update("raised", gorm.Expr("raised + ?", amount)).Error
		if err != nil {
			return fmt.Errorf("更新筹款额失败: %w", err)
		}
		return model.CreateOutboxMessage(tx, mq.TopicProjectEvents, projectID, ProjectEvent{
			Type:       EventProjectFunded,
			ProjectID:  projectID,
			Actor:      contributor,
			TxHash:     result.Hash,
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		return nil, result, err
	}

	s.invalidate(ctx, projectID)
	s.notify(contributor, result)
	return contribution, result, nil
}

// VoteProject 投票背书
func (s *ProjectService) VoteProject(ctx context.Context, projectID string, value uint32) (*chain.SubmissionResult, error) {
	return s.simpleInvoke(ctx, projectID, EventProjectVoted, func(actor string) chain.Call {
		return chain.VoteProject(projectID, actor, value)
	})
}

// WithdrawVote 撤回投票
func (s *ProjectService) WithdrawVote(ctx context.Context, projectID string) (*chain.SubmissionResult, error) {
	return s.simpleInvoke(ctx, projectID, EventVoteWithdrawn, func(actor string) chain.Call {
		return chain.WithdrawVote(projectID, actor)
	})
}

// ApproveMilestone 审批通过里程碑
func (s *ProjectService) ApproveMilestone(ctx context.Context, projectID string, number uint32) (*chain.SubmissionResult, error) {
	return s.milestoneInvoke(ctx, projectID, number, model.MilestoneStatusApproved, EventMilestoneApproved,
		func(actor string) chain.Call { return chain.ApproveMilestone(projectID, number, actor) })
}

// RejectMilestone 驳回里程碑
func (s *ProjectService) RejectMilestone(ctx context.Context, projectID string, number uint32) (*chain.SubmissionResult, error) {
	return s.milestoneInvoke(ctx, projectID, number, model.MilestoneStatusRejected, EventMilestoneRejected,
		func(actor string) chain.Call { return chain.RejectMilestone(projectID, number, actor) })
}

// ReleaseMilestone 释放里程碑资金
func (s *ProjectService) ReleaseMilestone(ctx context.Context, projectID string, number uint32) (*chain.SubmissionResult, error) {
	return s.milestoneInvoke(ctx, projectID, number, model.MilestoneStatusReleased, EventMilestoneReleased,
		func(actor string) chain.Call { return chain.ReleaseMilestone(projectID, number, actor) })
}

// Refund 发起退款并把项目标记为 refunded
func (s *ProjectService) Refund(ctx context.Context, projectID string) (*chain.SubmissionResult, error) {
	return s.statusInvoke(ctx, projectID, model.ProjectStatusRefunded, EventProjectRefunded,
		func(actor string) chain.Call { return chain.Refund(projectID, s.tokenContract) })
}

// CloseProject 关闭项目
func (s *ProjectService) CloseProject(ctx context.Context, projectID string) (*chain.SubmissionResult, error) {
	return s.statusInvoke(ctx, projectID, model.ProjectStatusClosed, EventProjectClosed,
		func(actor string) chain.Call { return chain.CloseProject(projectID, actor) })
}

// GetProject 查询项目，走 cache-aside
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	cacheKey := projectCacheKey(projectID)
	var cached model.Project
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, project, 30*time.Second); err != nil {
		logger.Warn("写项目缓存失败", zap.Error(err))
	}
	return project, nil
}

// ListProjects 分页列出项目
func (s *ProjectService) ListProjects(ctx context.Context, page, pageSize int) ([]model.Project, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计项目数失败: %w", err)
	}

	var projects []model.Project
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询项目列表失败: %w", err)
	}
	return projects, total, nil
}

// ListProjectTransactions 列出一个项目关联的链上交易记录。
// 关联关系靠各域表里留存的交易哈希: 创建交易在项目行上，
// 出资在 contributions，里程碑操作在 milestones。
func (s *ProjectService) ListProjectTransactions(ctx context.Context, projectID string) ([]model.ChainTransaction, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	hashes := make([]string, 0, 8)
	if project.TxHash != "" {
		hashes = append(hashes, project.TxHash)
	}

	var contributionHashes []string
	err = s.db.WithContext(ctx).Model(&model.Contribution{}).
		Where("project_id = ?", projectID).
		Pluck("tx_hash", &contributionHashes).Error
	if err != nil {
		return nil, fmt.Errorf("查询出资交易失败: %w", err)
	}
	hashes = append(hashes, contributionHashes...)

	var milestoneHashes []string
	err = s.db.WithContext(ctx).Model(&model.Milestone{}).
		Where("project_id = ? AND tx_hash <> ''", projectID).
		Pluck("tx_hash", &milestoneHashes).Error
	if err != nil {
		return nil, fmt.Errorf("查询里程碑交易失败: %w", err)
	}
	hashes = append(hashes, milestoneHashes...)

	if len(hashes) == 0 {
		return []model.ChainTransaction{}, nil
	}

	var txs []model.ChainTransaction
	err = s.db.WithContext(ctx).
		Where("hash IN ?", hashes).
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("查询链上交易失败: %w", err)
	}
	return txs, nil
}

// simpleInvoke 处理 "上链 + 发事件" 的轻量操作
func (s *ProjectService) simpleInvoke(ctx context.Context, projectID, eventType string, buildCall func(actor string) chain.Call) (*chain.SubmissionResult, error) {
	actor, err := s.wallet.Address()
	if err != nil {
		return nil, err
	}
	if _, err := s.loadProject(ctx, projectID); err != nil {
		return nil, err
	}

	result, err := s.pipeline.Invoke(ctx, buildCall(actor))
	if err != nil {
		return result, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return model.CreateOutboxMessage(tx, mq.TopicProjectEvents, projectID, ProjectEvent{
			Type:       eventType,
			ProjectID:  projectID,
			Actor:      actor,
			TxHash:     result.Hash,
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		return result, err
	}

	s.notify(actor, result)
	return result, nil
}

// milestoneInvoke 处理里程碑的链上操作 + 本地状态推进
func (s *ProjectService) milestoneInvoke(ctx context.Context, projectID string, number uint32, newStatus, eventType string, buildCall func(actor string) chain.Call) (*chain.SubmissionResult, error) {
	actor, err := s.wallet.Address()
	if err != nil {
		return nil, err
	}
	if _, err := s.loadProject(ctx, projectID); err != nil {
		return nil, err
	}

	result, err := s.pipeline.Invoke(ctx, buildCall(actor))
	if err != nil {
		return result, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Milestone{}).
			Where("project_id = ? AND number = ?", projectID, number).
			Updates(map[string]interface{}{"status": newStatus, "tx_hash": result.Hash}).Error
		if err != nil {
			return fmt.Errorf("更新里程碑状态失败: %w", err)
		}
		return model.CreateOutboxMessage(tx, mq.TopicProjectEvents, projectID, ProjectEvent{
			Type:       eventType,
			ProjectID:  projectID,
			Actor:      actor,
			TxHash:     result.Hash,
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		return result, err
	}

	s.invalidate(ctx, projectID)
	s.notify(actor, result)
	return result, nil
}

// statusInvoke 处理改变项目整体状态的链上操作
func (s *ProjectService) statusInvoke(ctx context.Context, projectID, newStatus, eventType string, buildCall func(actor string) chain.Call) (*chain.SubmissionResult, error) {
	actor, err := s.wallet.Address()
	if err != nil {
		return nil, err
	}
	if _, err := s.loadProject(ctx, projectID); err != nil {
		return nil, err
	}

	result, err := s.pipeline.Invoke(ctx, buildCall(actor))
	if err != nil {
		return result, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Project{}).
			Where("id = ?", projectID).
			Update("status", newStatus).Error
		if err != nil {
			return fmt.Errorf("更新项目状态失败: %w", err)
		}
		return model.CreateOutboxMessage(tx, mq.TopicProjectEvents, projectID, ProjectEvent{
			Type:       eventType,
			ProjectID:  projectID,
			Actor:      actor,
			TxHash:     result.Hash,
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		return result, err
	}

	s.invalidate(ctx, projectID)
	s.notify(actor, result)
	return result, nil
}

func (s *ProjectService) loadProject(ctx context.Context, projectID string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return &project, nil
}

// notify 入队交易终态通知，失败只告警
func (s *ProjectService) notify(recipient string, result *chain.SubmissionResult) {
	if s.worker == nil {
		return
	}
	err := s.worker.EnqueueTxNotification(tasks.TxNotificationPayload{
		Recipient: recipient,
		Hash:      result.Hash,
		Function:  result.Function,
		Success:   result.Status == chain.StatusSuccess,
		Detail:    result.ErrorDetail,
	})
	if err != nil {
		logger.Warn("入队通知失败", zap.Error(err))
	}
}

// invalidate 让项目缓存失效
func (s *ProjectService) invalidate(ctx context.Context, projectID string) {
	if err := s.cache.Delete(ctx, projectCacheKey(projectID)); err != nil {
		logger.Warn("清理项目缓存失败", zap.Error(err))
	}
}

func projectCacheKey(projectID string) string {
	return "boundless:project:" + projectID
}
