package chain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// 链上金额以最小单位的整数表示，1 token = 10^7 units
const amountDecimals = 7

var unitsPerToken = decimal.New(1, amountDecimals)

// ToUnits 把十进制金额换算成链上最小单位。
// 负数、精度超过 7 位小数、超出 uint64 范围都直接报错，
// 绝不做静默截断。
func ToUnits(amount decimal.Decimal) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("金额不能为负: %s", amount)
	}
	scaled := amount.Mul(unitsPerToken)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("金额精度超过 %d 位小数: %s", amountDecimals, amount)
	}
	if scaled.Cmp(decimal.NewFromUint64(math.MaxUint64)) > 0 {
		return 0, fmt.Errorf("金额超出范围: %s", amount)
	}
	return scaled.BigInt().Uint64(), nil
}

// FromUnits 把链上最小单位换算回十进制金额
func FromUnits(units uint64) decimal.Decimal {
	return decimal.NewFromUint64(units).Div(unitsPerToken)
}
