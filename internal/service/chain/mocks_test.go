package chain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

const (
	testContract = "CCCVHFXEQ5RBRRW4YX35TZ5X4D5ZZVLORIQXJB6ECI2BY5HBYBLD34PZ"
	testToken    = "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC"
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

// mockRPC 可脚本化的节点桩。
// send/tx 结果按序弹出，耗尽后重复最后一个。
type mockRPC struct {
	mu          sync.Mutex
	account     *soroban.Account
	accountErr  error
	sendResults []*soroban.SendResult
	sendErr     error
	txResults   []*soroban.TxResult
	txErr       error
	txErrTimes  int // txErr 只在前 N 次查询时生效, 0 表示一直生效

	getAccountCalls int
	sendCalls       int
	getTxCalls      int
}

func (m *mockRPC) GetAccount(_ context.Context, _ string) (*soroban.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getAccountCalls++
	if m.accountErr != nil {
		return nil, m.accountErr
	}
	return m.account, nil
}

func (m *mockRPC) SendTransaction(_ context.Context, _ string) (*soroban.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls++
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return pop(m.sendResults, m.sendCalls), nil
}

func (m *mockRPC) GetTransaction(_ context.Context, _ string) (*soroban.TxResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getTxCalls++
	if m.txErr != nil && (m.txErrTimes == 0 || m.getTxCalls <= m.txErrTimes) {
		return nil, m.txErr
	}
	return pop(m.txResults, m.getTxCalls), nil
}

// txCallCount 供并发断言使用
func (m *mockRPC) txCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getTxCalls
}

func pop[T any](results []*T, call int) *T {
	if call <= len(results) {
		return results[call-1]
	}
	return results[len(results)-1]
}

// rejectingSigner 模拟持有人拒签
type rejectingSigner struct{}

func (rejectingSigner) GetAddress(_ context.Context) (string, error) {
	return "GREJECT", nil
}

func (rejectingSigner) SignTransaction(_ context.Context, _, _ string) (string, error) {
	return "", signer.ErrRejected
}

// tamperingSigner 模拟签名方改动内层信封
type tamperingSigner struct {
	inner signer.Signer
}

func (t tamperingSigner) GetAddress(ctx context.Context) (string, error) {
	return t.inner.GetAddress(ctx)
}

func (t tamperingSigner) SignTransaction(ctx context.Context, envelope, passphrase string) (string, error) {
	env, err := soroban.DecodeUnsigned(envelope)
	if err != nil {
		return "", err
	}
	env.Fee += 1000 // 偷偷抬手续费
	tampered, err := env.Encode()
	if err != nil {
		return "", err
	}
	return t.inner.SignTransaction(ctx, tampered, passphrase)
}

// memoryRecorder 记录落库调用，断言用
type memoryRecorder struct {
	submitted []*model.ChainTransaction
	settled   map[string]*SubmissionResult
}

func newMemoryRecorder() *memoryRecorder {
	return &memoryRecorder{settled: make(map[string]*SubmissionResult)}
}

func (r *memoryRecorder) Submitted(_ context.Context, tx *model.ChainTransaction) error {
	r.submitted = append(r.submitted, tx)
	return nil
}

func (r *memoryRecorder) Settled(_ context.Context, hash string, result *SubmissionResult) error {
	r.settled[hash] = result
	return nil
}

func (r *memoryRecorder) statusOf(hash string) string {
	if result, ok := r.settled[hash]; ok {
		if result.Status == StatusSuccess {
			return model.ChainTxStatusSuccess
		}
		return model.ChainTxStatusFailed
	}
	for _, tx := range r.submitted {
		if tx.Hash == hash {
			return tx.Status
		}
	}
	return ""
}

// connectedWallet 返回一个已连接的会话管理器
func connectedWallet(s signer.Signer) *wallet.Manager {
	m := wallet.NewManager(s, soroban.NetworkTestnet, cache.NewMemoryCache(time.Minute, time.Minute))
	if _, err := m.Connect(context.Background()); err != nil {
		panic(err)
	}
	return m
}

// disconnectedWallet 返回一个从未连接的会话管理器
func disconnectedWallet(s signer.Signer) *wallet.Manager {
	return wallet.NewManager(s, soroban.NetworkTestnet, cache.NewMemoryCache(time.Minute, time.Minute))
}

func newTestPipeline(rpc soroban.Client, s signer.Signer, w *wallet.Manager, rec Recorder, confirmAttempts int) *Pipeline {
	builder := NewBuilder(rpc, w, testContract, soroban.NetworkTestnet, 100, 120)
	coordinator := NewCoordinator(s, soroban.NetworkTestnet)
	submitter := NewSubmitter(rpc, confirmAttempts, time.Millisecond)
	return NewPipeline(builder, coordinator, submitter, rec, soroban.NetworkTestnet)
}

var errRPCDown = errors.New("connection refused")
