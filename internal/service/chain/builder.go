package chain

import (
	"context"
	"fmt"

	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// Builder 把合约调用组装成未签名的交易信封。
// 序列号在构造时从节点取一次，不在本地推测。
type Builder struct {
	rpc      soroban.Client
	wallet   *wallet.Manager
	contract string
	network  soroban.Network
	baseFee  uint32
	timeout  uint32
}

func NewBuilder(rpc soroban.Client, w *wallet.Manager, contract string, network soroban.Network, baseFee, timeoutSeconds uint32) *Builder {
	return &Builder{
		rpc:      rpc,
		wallet:   w,
		contract: contract,
		network:  network,
		baseFee:  baseFee,
		timeout:  timeoutSeconds,
	}
}

// Build 组装信封。
// 先取会话地址再碰网络: 没有活跃会话时不发任何 RPC 请求。
// 信封内容对 (调用, 序列号) 是确定性的。
func (b *Builder) Build(ctx context.Context, call Call) (*soroban.UnsignedEnvelope, error) {
	source, err := b.wallet.Address()
	if err != nil {
		return nil, err
	}

	account, err := b.rpc.GetAccount(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("查询账户序列号失败: %w", err)
	}

	return &soroban.UnsignedEnvelope{
		SourceAccount:     source,
		SequenceNumber:    account.Sequence + 1,
		Fee:               b.baseFee,
		TimeoutSeconds:    b.timeout,
		NetworkPassphrase: b.network.Passphrase(),
		Operations: []soroban.Operation{{
			Contract: b.contract,
			Function: call.Function,
			Args:     call.Args,
		}},
	}, nil
}
