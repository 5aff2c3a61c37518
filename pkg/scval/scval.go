package scval

import (
	"errors"
	"fmt"
	"strconv"
)

// Type 是合约参数的类型标签
type Type string

const (
	TypeSymbol  Type = "symbol"
	TypeAddress Type = "address"
	TypeU32     Type = "u32"
	TypeU64     Type = "u64"
	TypeI128    Type = "i128"
	TypeBool    Type = "bool"
)

// ErrUnsupportedType 表示调用方传入了无法编码的 Go 类型。
// 这是调用方的契约违反 (编程错误)，不是运行时可恢复的失败。
var ErrUnsupportedType = errors.New("不支持的合约参数类型")

// Val 是一个带类型标签的合约参数值。
// Value 统一以字符串承载，保证 JSON 编码确定性 (u64 不会掉进 float64)。
type Val struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
}

// AccountID 标记一个账户地址参数 (G... / C...)，
// 区别于普通字符串 (普通字符串编码为 symbol)。
type AccountID string

// Symbol 将字符串编码为 symbol 类型参数
func Symbol(s string) Val {
	return Val{Type: TypeSymbol, Value: s}
}

// Address 将账户/合约地址编码为 address 类型参数
func Address(addr string) Val {
	return Val{Type: TypeAddress, Value: addr}
}

// U32 编码 32 位无符号整数参数
func U32(v uint32) Val {
	return Val{Type: TypeU32, Value: strconv.FormatUint(uint64(v), 10)}
}

// U64 编码 64 位无符号整数参数
func U64(v uint64) Val {
	return Val{Type: TypeU64, Value: strconv.FormatUint(v, 10)}
}

// I128 编码 128 位整数参数，十进制字符串承载
func I128(s string) Val {
	return Val{Type: TypeI128, Value: s}
}

// Bool 编码布尔参数
func Bool(b bool) Val {
	if b {
		return Val{Type: TypeBool, Value: "true"}
	}
	return Val{Type: TypeBool, Value: "false"}
}

// From 按 Go 类型自动打标:
// string → symbol, AccountID → address, uint32 → u32, uint64/int64/int → u64, bool → bool。
// 未识别的类型直接失败 (fail fast)，不做猜测。
func From(v interface{}) (Val, error) {
	switch typed := v.(type) {
	case Val:
		return typed, nil
	case AccountID:
		return Address(string(typed)), nil
	case string:
		return Symbol(typed), nil
	case uint32:
		return U32(typed), nil
	case uint64:
		return U64(typed), nil
	case int:
		if typed < 0 {
			return Val{}, fmt.Errorf("%w: 负数无法编码为 u64 (%d)", ErrUnsupportedType, typed)
		}
		return U64(uint64(typed)), nil
	case int64:
		if typed < 0 {
			return Val{}, fmt.Errorf("%w: 负数无法编码为 u64 (%d)", ErrUnsupportedType, typed)
		}
		return U64(uint64(typed)), nil
	case bool:
		return Bool(typed), nil
	default:
		return Val{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}
