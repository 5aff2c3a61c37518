package chain

import "github.com/0xdevcollins/boundless-sub003/pkg/scval"

// 合约函数名。与链上合约的导出符号一一对应。
const (
	FnCreateProject    = "create_project"
	FnFundProject      = "fund_project"
	FnVoteProject      = "vote_project"
	FnWithdrawVote     = "withdraw_vote"
	FnApproveMilestone = "approve_milestone"
	FnRejectMilestone  = "reject_milestone"
	FnReleaseMilestone = "release_milestone"
	FnRefund           = "refund"
	FnCloseProject     = "close_project"
	FnGetProject       = "get_project"
)

// 下面的构造函数把业务参数翻译成类型化的合约调用。
// 参数个数、顺序和类型跟链上合约的函数签名一次定死，
// 上层不可能拼出参数错位的调用。

// CreateProject 创建众筹项目。
// 合约签名: create_project(project_id, creator, metadata_uri, funding_target, milestone_count)
func CreateProject(projectID, creator, metadataURI string, fundingTargetUnits uint64, milestoneCount uint32) Call {
	return Call{
		Function: FnCreateProject,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.Address(creator),
			scval.Symbol(metadataURI),
			scval.U64(fundingTargetUnits),
			scval.U32(milestoneCount),
		},
	}
}

// FundProject 向项目出资。
// 合约签名: fund_project(project_id, amount, funder, token_contract)
func FundProject(projectID string, amountUnits uint64, funder, tokenContract string) Call {
	return Call{
		Function: FnFundProject,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.U64(amountUnits),
			scval.Address(funder),
			scval.Address(tokenContract),
		},
	}
}

// VoteProject 为项目投票。
// 合约签名: vote_project(project_id, voter, vote_value)
func VoteProject(projectID, voter string, voteValue uint32) Call {
	return Call{
		Function: FnVoteProject,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.Address(voter),
			scval.U32(voteValue),
		},
	}
}

// WithdrawVote 撤回投票。
// 合约签名: withdraw_vote(project_id, voter)
func WithdrawVote(projectID, voter string) Call {
	return Call{
		Function: FnWithdrawVote,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.Address(voter),
		},
	}
}

// ApproveMilestone 审批通过里程碑。
// 合约签名: approve_milestone(project_id, milestone_number, admin)
func ApproveMilestone(projectID string, number uint32, admin string) Call {
	return Call{
		Function: FnApproveMilestone,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.U32(number),
			scval.Address(admin),
		},
	}
}

// RejectMilestone 驳回里程碑。
// 合约签名: reject_milestone(project_id, milestone_number, admin)
func RejectMilestone(projectID string, number uint32, admin string) Call {
	return Call{
		Function: FnRejectMilestone,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.U32(number),
			scval.Address(admin),
		},
	}
}

// ReleaseMilestone 释放已审批里程碑的资金。
// 合约签名: release_milestone(project_id, milestone_number, admin)
func ReleaseMilestone(projectID string, number uint32, admin string) Call {
	return Call{
		Function: FnReleaseMilestone,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.U32(number),
			scval.Address(admin),
		},
	}
}

// Refund 为出资人发起退款。
// 合约签名: refund(project_id, token_contract)
func Refund(projectID, tokenContract string) Call {
	return Call{
		Function: FnRefund,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.Address(tokenContract),
		},
	}
}

// CloseProject 关闭项目。
// 合约签名: close_project(project_id, creator)
func CloseProject(projectID, creator string) Call {
	return Call{
		Function: FnCloseProject,
		Args: []scval.Val{
			scval.Symbol(projectID),
			scval.Address(creator),
		},
	}
}

// GetProject 查询项目的链上状态。
// 合约签名: get_project(project_id)
func GetProject(projectID string) Call {
	return Call{
		Function: FnGetProject,
		Args:     []scval.Val{scval.Symbol(projectID)},
	}
}
