package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContractError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Known code", "Error(Contract, #7)", "contract error #7: Project is closed"},
		{"Missing project", "Error(Contract, #4)", "contract error #4: Project with the given ID does not exist"},
		{"Insufficient funds", "Error(Contract, #16)", "contract error #16: Insufficient funds"},
		{"Embedded in context", "host error: Error(Contract, #8) while calling fund_project", "contract error #8: Funding period has ended"},
		{"Without hash mark", "Error(Contract, 10)", "contract error #10: User has already voted"},
		{"Unknown code", "Error(Contract, #99)", "unknown contract error #99"},
		{"Not a contract error", "tx_insufficient_fee", "tx_insufficient_fee"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeContractError(tt.raw))
		})
	}
}

func TestContractErrorTableComplete(t *testing.T) {
	// 错误码必须连续覆盖 1..24，空洞说明表和合约脱节了
	for code := 1; code <= 24; code++ {
		assert.Contains(t, contractErrorMessages, code)
	}
}
