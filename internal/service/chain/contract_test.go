package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
)

// 每个构造函数产出的参数个数、顺序和类型都必须和链上合约
// 的函数签名严格一致，错一位整笔调用就会在合约里回滚。
func TestContractCallShapes(t *testing.T) {
	tests := []struct {
		name string
		call Call
		fn   string
		want []scval.Val
	}{
		{
			name: "create_project",
			call: CreateProject("proj-1", "GCREATOR", "ipfs://meta", 5000000, 3),
			fn:   FnCreateProject,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.Address("GCREATOR"),
				scval.Symbol("ipfs://meta"),
				scval.U64(5000000),
				scval.U32(3),
			},
		},
		{
			name: "fund_project",
			call: FundProject("proj-1", 1000000, "GFUNDER", "CTOKEN"),
			fn:   FnFundProject,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.U64(1000000),
				scval.Address("GFUNDER"),
				scval.Address("CTOKEN"),
			},
		},
		{
			name: "vote_project",
			call: VoteProject("proj-1", "GVOTER", 1),
			fn:   FnVoteProject,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.Address("GVOTER"),
				scval.U32(1),
			},
		},
		{
			name: "withdraw_vote",
			call: WithdrawVote("proj-1", "GVOTER"),
			fn:   FnWithdrawVote,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.Address("GVOTER"),
			},
		},
		{
			name: "approve_milestone",
			call: ApproveMilestone("proj-1", 2, "GADMIN"),
			fn:   FnApproveMilestone,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.U32(2),
				scval.Address("GADMIN"),
			},
		},
		{
			name: "release_milestone",
			call: ReleaseMilestone("proj-1", 2, "GADMIN"),
			fn:   FnReleaseMilestone,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.U32(2),
				scval.Address("GADMIN"),
			},
		},
		{
			name: "refund",
			call: Refund("proj-1", "CTOKEN"),
			fn:   FnRefund,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.Address("CTOKEN"),
			},
		},
		{
			name: "close_project",
			call: CloseProject("proj-1", "GCREATOR"),
			fn:   FnCloseProject,
			want: []scval.Val{
				scval.Symbol("proj-1"),
				scval.Address("GCREATOR"),
			},
		},
		{
			name: "get_project",
			call: GetProject("proj-1"),
			fn:   FnGetProject,
			want: []scval.Val{scval.Symbol("proj-1")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fn, tt.call.Function)
			require.Len(t, tt.call.Args, len(tt.want))
			assert.Equal(t, tt.want, tt.call.Args)
		})
	}
}
