package signer

import (
	"context"
	"errors"
)

// 签名失败分两类:
// ErrRejected   — 持有人明确拒绝了这次签名 (终态，不应重试)
// ErrUnavailable — 签名端不可达或未就绪 (可在新的尝试中重试)
var (
	ErrRejected    = errors.New("签名请求被持有人拒绝")
	ErrUnavailable = errors.New("签名端不可用")
)

// Signer 抽象外部签名方 (本地密钥、浏览器钱包桥等)。
// 私钥永远不会越过该接口边界。
type Signer interface {
	// GetAddress 返回签名方控制的账户地址
	GetAddress(ctx context.Context) (string, error)
	// SignTransaction 对未签名信封签名，返回签名信封。
	// passphrase 必须与信封内的网络 passphrase 一致，
	// 防止把测试网交易骗签到主网上。
	SignTransaction(ctx context.Context, envelope string, passphrase string) (string, error)
}
