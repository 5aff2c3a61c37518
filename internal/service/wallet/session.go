package wallet

import (
	"time"

	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// State 是钱包会话的状态机取值
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateError        State = "error"
)

// Session 是会话的一份不可变快照。
// 不变式: Address 非空 当且仅当 State == connected。
type Session struct {
	State       State           `json:"state"`
	Address     string          `json:"address"`
	Network     soroban.Network `json:"network"`
	LastError   string          `json:"last_error,omitempty"`
	ConnectedAt time.Time       `json:"connected_at,omitempty"`
}

// Connected 报告会话当前是否可用于签名
func (s Session) Connected() bool {
	return s.State == StateConnected
}
