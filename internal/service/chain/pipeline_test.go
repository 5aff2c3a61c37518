package chain

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// 场景: 出资 → 签名 → 提交 → 确认成功
func TestInvokeHappyPath(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{
		account: &soroban.Account{Sequence: 100},
		sendResults: []*soroban.SendResult{
			{Status: soroban.SendStatusPending},
		},
		txResults: []*soroban.TxResult{
			{Status: soroban.TxStatusNotFound},
			{Status: soroban.TxStatusSuccess, Ledger: 54321, ReturnValue: "AAAAAQ=="},
		},
	}
	rec := newMemoryRecorder()
	p := newTestPipeline(rpc, local, connectedWallet(local), rec, 10)

	result, err := p.Invoke(context.Background(), FundProject("proj-1", 5000000, "GFUNDER", testToken))
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, uint64(54321), result.Ledger)
	assert.Equal(t, uint64(101), result.SequenceNumber)
	assert.Equal(t, FnFundProject, result.Function)
	assert.NotEmpty(t, result.Hash)
	assert.Equal(t, 2, result.Attempts)

	// 落库轨迹: 先 pending 后 success
	require.Len(t, rec.submitted, 1)
	assert.Equal(t, model.ChainTxStatusPending, rec.submitted[0].Status)
	assert.Equal(t, model.ChainTxStatusSuccess, rec.statusOf(result.Hash))
}

// 场景: 持有人在钱包里点了拒绝 → 不提交任何东西
func TestInvokeSigningRejected(t *testing.T) {
	rpc := &mockRPC{account: &soroban.Account{Sequence: 1}}
	rec := newMemoryRecorder()
	p := newTestPipeline(rpc, rejectingSigner{}, connectedWallet(rejectingSigner{}), rec, 10)

	_, err := p.Invoke(context.Background(), VoteProject("proj-1", "GVOTER", 1))
	require.ErrorIs(t, err, signer.ErrRejected)

	assert.Zero(t, rpc.sendCalls, "拒签后不能向节点提交")
	assert.Zero(t, rpc.getTxCalls)
	assert.Empty(t, rec.submitted, "拒签不落库")
}

// 场景: 交易上链但合约执行失败 → failed + 可读错误
func TestInvokeContractFailure(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{
		account: &soroban.Account{Sequence: 1},
		sendResults: []*soroban.SendResult{
			{Status: soroban.SendStatusPending},
		},
		txResults: []*soroban.TxResult{
			{Status: soroban.TxStatusFailed, Ledger: 777, ResultError: "Error(Contract, #8)"},
		},
	}
	rec := newMemoryRecorder()
	p := newTestPipeline(rpc, local, connectedWallet(local), rec, 10)

	result, err := p.Invoke(context.Background(), FundProject("proj-1", 100, "GFUNDER", testToken))
	require.ErrorIs(t, err, ErrTransactionFailed)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.ErrorDetail, "Funding period has ended")
	assert.Equal(t, model.ChainTxStatusFailed, rec.statusOf(result.Hash))
}

// 场景: 确认窗口耗尽 → timed_out，库里保持 pending 交给对账
func TestInvokeConfirmTimeout(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{
		account: &soroban.Account{Sequence: 1},
		sendResults: []*soroban.SendResult{
			{Status: soroban.SendStatusPending},
		},
		txResults: []*soroban.TxResult{
			{Status: soroban.TxStatusNotFound},
		},
	}
	rec := newMemoryRecorder()
	p := newTestPipeline(rpc, local, connectedWallet(local), rec, 4)

	result, err := p.Invoke(context.Background(), CloseProject("proj-1", "GOWNER"))
	require.ErrorIs(t, err, ErrConfirmTimeout)

	assert.Equal(t, StatusTimedOut, result.Status)
	assert.Equal(t, 4, result.Attempts)
	assert.Equal(t, 4, rpc.getTxCalls, "轮询次数不超过上限")
	// 终态未知，记录保持 pending
	assert.Equal(t, model.ChainTxStatusPending, rec.statusOf(result.Hash))
}

// 节点入队即拒绝 → rejected，绝不返回 pending
func TestInvokeSubmissionRejected(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{
		account: &soroban.Account{Sequence: 1},
		sendResults: []*soroban.SendResult{
			{Status: soroban.SendStatusError, ErrorResult: "tx_bad_seq"},
		},
	}
	rec := newMemoryRecorder()
	p := newTestPipeline(rpc, local, connectedWallet(local), rec, 10)

	result, err := p.Invoke(context.Background(), GetProject("proj-1"))
	require.ErrorIs(t, err, ErrSubmissionRejected)

	assert.Equal(t, StatusRejected, result.Status)
	assert.Contains(t, result.ErrorDetail, "tx_bad_seq")
	assert.Zero(t, rpc.getTxCalls, "被拒绝的交易不进确认轮询")
	assert.Empty(t, rec.submitted)
}

// DUPLICATE 入队应答 → 照常走确认，不产生第二行记录
func TestInvokeDuplicateSend(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{
		account: &soroban.Account{Sequence: 1},
		sendResults: []*soroban.SendResult{
			{Status: soroban.SendStatusDuplicate},
		},
		txResults: []*soroban.TxResult{
			{Status: soroban.TxStatusSuccess, Ledger: 10},
		},
	}
	rec := newMemoryRecorder()
	p := newTestPipeline(rpc, local, connectedWallet(local), rec, 10)

	result, err := p.Invoke(context.Background(), GetProject("proj-1"))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
}

// 签名方篡改内层信封 → 整笔丢弃
func TestInvokeTamperedEnvelopeDiscarded(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{account: &soroban.Account{Sequence: 1}}
	p := newTestPipeline(rpc, tamperingSigner{inner: local}, connectedWallet(local), newMemoryRecorder(), 10)

	_, err = p.Invoke(context.Background(), GetProject("proj-1"))
	require.Error(t, err)
	assert.Zero(t, rpc.sendCalls, "被篡改的信封不能提交")
}

// 没有活跃会话 → 在构造阶段就终止
func TestInvokeWithoutSession(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{account: &soroban.Account{Sequence: 1}}
	p := newTestPipeline(rpc, local, disconnectedWallet(local), newMemoryRecorder(), 10)

	_, err = p.Invoke(context.Background(), GetProject("proj-1"))
	require.Error(t, err)
	assert.Zero(t, rpc.getAccountCalls)
	assert.Zero(t, rpc.sendCalls)
}

// 同一条流水线并发第二笔 → 立即 ErrAttemptInFlight，不排队
func TestInvokeSingleFlight(t *testing.T) {
	local, err := signer.NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	rpc := &mockRPC{
		account: &soroban.Account{Sequence: 1},
		sendResults: []*soroban.SendResult{
			{Status: soroban.SendStatusPending},
		},
		txResults: []*soroban.TxResult{
			{Status: soroban.TxStatusNotFound},
		},
	}
	// 足够多的轮询次数保证第一笔还在途时发起第二笔
	p := newTestPipeline(rpc, local, connectedWallet(local), newMemoryRecorder(), 50)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = p.Invoke(context.Background(), GetProject("proj-1"))
	}()

	// 等第一笔进入轮询
	require.Eventually(t, func() bool {
		return rpc.txCallCount() > 0
	}, time.Second, time.Millisecond)

	_, err = p.Invoke(context.Background(), GetProject("proj-2"))
	assert.ErrorIs(t, err, ErrAttemptInFlight)
	wg.Wait()
}
