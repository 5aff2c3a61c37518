package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

func newTestBuilder(rpc soroban.Client, w *wallet.Manager) *Builder {
	return NewBuilder(rpc, w, testContract, soroban.NetworkTestnet, 100, 120)
}

func TestBuildAssemblesEnvelope(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{account: &soroban.Account{AccountID: "G...", Sequence: 41}}
	b := newTestBuilder(rpc, connectedWallet(local))

	env, err := b.Build(context.Background(), VoteProject("proj-1", "GVOTER", 1))
	require.NoError(t, err)

	addr, _ := local.GetAddress(context.Background())
	assert.Equal(t, addr, env.SourceAccount)
	assert.Equal(t, uint64(42), env.SequenceNumber, "序列号 = 账户当前序列号 + 1")
	assert.Equal(t, uint32(100), env.Fee)
	assert.Equal(t, soroban.NetworkTestnet.Passphrase(), env.NetworkPassphrase)
	require.Len(t, env.Operations, 1)
	assert.Equal(t, testContract, env.Operations[0].Contract)
	assert.Equal(t, FnVoteProject, env.Operations[0].Function)
}

func TestBuildWithoutSessionSkipsRPC(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{account: &soroban.Account{Sequence: 41}}
	b := newTestBuilder(rpc, disconnectedWallet(local))

	_, err = b.Build(context.Background(), GetProject("proj-1"))
	assert.ErrorIs(t, err, wallet.ErrNoActiveSession)
	assert.Zero(t, rpc.getAccountCalls, "没有会话时不应发出任何 RPC 请求")
}

func TestBuildDeterministic(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{account: &soroban.Account{Sequence: 7}}
	b := newTestBuilder(rpc, connectedWallet(local))

	call := FundProject("proj-1", 5000000, "GFUNDER", testToken)
	first, err := b.Build(context.Background(), call)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), call)
	require.NoError(t, err)

	// 相同调用 + 相同序列号 → 相同哈希
	hashA, err := first.Hash()
	require.NoError(t, err)
	hashB, err := second.Hash()
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}

func TestBuildPropagatesRPCError(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{accountErr: errRPCDown}
	b := newTestBuilder(rpc, connectedWallet(local))

	_, err = b.Build(context.Background(), GetProject("proj-1"))
	assert.ErrorIs(t, err, errRPCDown)
}
