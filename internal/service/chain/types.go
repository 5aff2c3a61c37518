package chain

import (
	"errors"

	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
)

// 一次提交尝试的最终结局。
// 没有 pending: 调用方拿到的结果永远是终态，
// 确认窗口内未见终态按超时处理，后续由对账任务推进。
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRejected Status = "rejected"
	StatusTimedOut Status = "timed_out"
)

var (
	// ErrAttemptInFlight 同一条流水线上已有交易在途，需等它终结
	ErrAttemptInFlight = errors.New("已有一笔交易在途，请等待其终结")
	// ErrSubmissionRejected 节点在入队阶段就拒绝了交易
	ErrSubmissionRejected = errors.New("交易被节点拒绝")
	// ErrConfirmTimeout 确认窗口耗尽仍未见终态
	ErrConfirmTimeout = errors.New("确认超时，交易仍在途")
	// ErrTransactionFailed 交易上链但执行失败
	ErrTransactionFailed = errors.New("交易执行失败")
)

// Call 是一次待执行的合约调用，由类型化构造函数产出
type Call struct {
	Function string
	Args     []scval.Val
}

// SubmissionResult 汇总一次提交尝试的全部信息
type SubmissionResult struct {
	Hash           string `json:"hash"`
	Status         Status `json:"status"`
	Function       string `json:"function"`
	Source         string `json:"source"`
	SequenceNumber uint64 `json:"sequence_number"`
	Ledger         uint64 `json:"ledger,omitempty"`
	ReturnValue    string `json:"return_value,omitempty"`
	ErrorDetail    string `json:"error_detail,omitempty"`
	Attempts       int    `json:"attempts"`
}

// Terminal 报告结果对链而言是否已定局。
// timed_out 对本次尝试是终态，但链上交易可能仍会落账。
func (r *SubmissionResult) Terminal() bool {
	return r.Status == StatusSuccess || r.Status == StatusFailed || r.Status == StatusRejected
}
