package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/0xdevcollins/boundless-sub003/internal/handler/response"
	"github.com/0xdevcollins/boundless-sub003/internal/service"
	"github.com/0xdevcollins/boundless-sub003/internal/service/chain"
	"github.com/0xdevcollins/boundless-sub003/pkg/errno"
)

// ProjectHandler 项目相关接口
type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func txView(result *chain.SubmissionResult) TxResultView {
	return TxResultView{
		Hash:           result.Hash,
		Status:         string(result.Status),
		Function:       result.Function,
		Ledger:         result.Ledger,
		ReturnValue:    result.ReturnValue,
		SequenceNumber: result.SequenceNumber,
		Attempts:       result.Attempts,
	}
}

// Create 创建项目
// @Summary 创建众筹项目
// @Description 通过已连接的钱包在链上创建项目，确认成功后落库
// @Tags project
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "项目信息"
// @Success 200 {object} response.Response
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}
	goal, err := decimal.NewFromString(req.FundingGoal)
	if err != nil {
		response.Error(c, errno.ErrBind.WithDetail("funding_goal 不是合法金额"))
		return
	}

	project, result, err := h.projects.CreateProject(c.Request.Context(), req.Title, req.Description, req.MetadataURI, goal, req.MilestoneCount, time.Unix(req.Deadline, 0))
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{
		"project": project,
		"tx":      txView(result),
	})
}

// Fund 出资
// @Summary 向项目出资
// @Tags project
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Param request body FundProjectRequest true "出资金额"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/fund [post]
func (h *ProjectHandler) Fund(c *gin.Context) {
	var req FundProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, errno.ErrBind.WithDetail("amount 不是合法金额"))
		return
	}

	contribution, result, err := h.projects.FundProject(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{
		"contribution": contribution,
		"tx":           txView(result),
	})
}

// Vote 投票背书
// @Summary 为项目投票
// @Tags project
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Param request body VoteProjectRequest false "票值，缺省为 1"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/vote [post]
func (h *ProjectHandler) Vote(c *gin.Context) {
	req := VoteProjectRequest{Value: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, errno.ErrBind)
			return
		}
		if req.Value == 0 {
			req.Value = 1
		}
	}

	result, err := h.projects.VoteProject(c.Request.Context(), c.Param("id"), req.Value)
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{"tx": txView(result)})
}

// WithdrawVote 撤回投票
// @Summary 撤回投票
// @Tags project
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/vote [delete]
func (h *ProjectHandler) WithdrawVote(c *gin.Context) {
	result, err := h.projects.WithdrawVote(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{"tx": txView(result)})
}

// ApproveMilestone 审批里程碑
// @Summary 审批通过里程碑
// @Tags milestone
// @Produce json
// @Param id path string true "项目 ID"
// @Param number path int true "里程碑序号"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/milestones/{number}/approve [post]
func (h *ProjectHandler) ApproveMilestone(c *gin.Context) {
	h.milestoneAction(c, h.projects.ApproveMilestone)
}

// RejectMilestone 驳回里程碑
// @Summary 驳回里程碑
// @Tags milestone
// @Produce json
// @Param id path string true "项目 ID"
// @Param number path int true "里程碑序号"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/milestones/{number}/reject [post]
func (h *ProjectHandler) RejectMilestone(c *gin.Context) {
	h.milestoneAction(c, h.projects.RejectMilestone)
}

// ReleaseMilestone 释放里程碑资金
// @Summary 释放里程碑资金
// @Tags milestone
// @Produce json
// @Param id path string true "项目 ID"
// @Param number path int true "里程碑序号"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/milestones/{number}/release [post]
func (h *ProjectHandler) ReleaseMilestone(c *gin.Context) {
	h.milestoneAction(c, h.projects.ReleaseMilestone)
}

func (h *ProjectHandler) milestoneAction(c *gin.Context, action func(ctx context.Context, projectID string, number uint32) (*chain.SubmissionResult, error)) {
	number, err := strconv.ParseUint(c.Param("number"), 10, 32)
	if err != nil {
		response.Error(c, errno.ErrBind.WithDetail("number 不是合法序号"))
		return
	}
	result, err := action(c.Request.Context(), c.Param("id"), uint32(number))
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{"tx": txView(result)})
}

// Refund 发起退款
// @Summary 为出资人发起退款
// @Tags project
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/refund [post]
func (h *ProjectHandler) Refund(c *gin.Context) {
	result, err := h.projects.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{"tx": txView(result)})
}

// Close 关闭项目
// @Summary 关闭项目
// @Tags project
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/close [post]
func (h *ProjectHandler) Close(c *gin.Context) {
	result, err := h.projects.CloseProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, toErrno(err, result))
		return
	}
	response.Success(c, gin.H{"tx": txView(result)})
}

// Get 查询项目
// @Summary 查询项目详情
// @Tags project
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, toErrno(err, nil))
		return
	}
	response.Success(c, project)
}

// Transactions 项目关联的链上交易
// @Summary 查询项目的链上交易记录
// @Tags project
// @Produce json
// @Param id path string true "项目 ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/transactions [get]
func (h *ProjectHandler) Transactions(c *gin.Context) {
	txs, err := h.projects.ListProjectTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, toErrno(err, nil))
		return
	}
	response.Success(c, gin.H{"items": txs})
}

// List 项目列表
// @Summary 分页查询项目列表
// @Tags project
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} response.Response
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	projects, total, err := h.projects.ListProjects(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, toErrno(err, nil))
		return
	}
	response.Success(c, gin.H{
		"items": projects,
		"total": total,
	})
}
