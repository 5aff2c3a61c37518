package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
	"github.com/0xdevcollins/boundless-sub003/pkg/monitor"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// sessionKey 是会话在缓存里的唯一落点。
// 所有读写都走这个 key，换存储实现不影响上层。
const sessionKey = "boundless:wallet:session"

// ErrNoActiveSession 表示当前没有已连接的钱包会话
var ErrNoActiveSession = errors.New("没有活跃的钱包会话")

// Manager 管理钱包连接会话。
// 单写者: 所有状态变更持同一把锁，快照读取也走锁，
// 外部永远看不到半更新的会话。
type Manager struct {
	mu      sync.Mutex
	session Session
	signer  signer.Signer
	network soroban.Network
	store   cache.Cache
}

// NewManager 创建会话管理器，初始状态为 disconnected
func NewManager(s signer.Signer, network soroban.Network, store cache.Cache) *Manager {
	return &Manager{
		signer:  s,
		network: network,
		store:   store,
		session: Session{State: StateDisconnected, Network: network},
	}
}

// checkInvariant 校验核心不变式: 地址非空 ⇔ 已连接。
// 每次状态变更后都要过一遍，违反说明代码有 bug，直接 panic。
func checkInvariant(s Session) {
	hasAddr := s.Address != ""
	connected := s.State == StateConnected
	if hasAddr != connected {
		panic(fmt.Sprintf("钱包会话不变式被破坏: state=%s address=%q", s.State, s.Address))
	}
}

// transition 在锁内完成一次状态变更并持久化
func (m *Manager) transition(next Session) {
	checkInvariant(next)
	m.session = next
	if err := m.store.Set(context.Background(), sessionKey, next, 0); err != nil {
		// 持久化失败不阻断状态机，重启后由 Restore 兜底
		logger.Warn("持久化钱包会话失败", zap.Error(err))
	}
}

// Connect 发起一次连接握手。
// 任何失败 (拒绝、签名端不可达) 都进入 error 状态，
// 原因记录在会话里，下一次 Connect 可以从 error 恢复。
func (m *Manager) Connect(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transition(Session{State: StateConnecting, Network: m.network})

	address, err := m.signer.GetAddress(ctx)
	if err != nil {
		outcome := "error"
		if errors.Is(err, signer.ErrRejected) {
			outcome = "rejected"
		}
		monitor.Business.WalletConnectTotal.WithLabelValues(outcome).Inc()
		m.transition(Session{
			State:     StateError,
			Network:   m.network,
			LastError: err.Error(),
		})
		logger.Warn("钱包连接失败", zap.Error(err))
		return m.session, err
	}

	m.transition(Session{
		State:       StateConnected,
		Address:     address,
		Network:     m.network,
		ConnectedAt: time.Now(),
	})
	monitor.Business.WalletConnectTotal.WithLabelValues("success").Inc()
	logger.Info("钱包已连接", zap.String("address", address), zap.String("network", string(m.network)))
	return m.session, nil
}

// Disconnect 主动断开会话，从任何状态都可以调用
func (m *Manager) Disconnect() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transition(Session{State: StateDisconnected, Network: m.network})
	logger.Info("钱包已断开")
	return m.session
}

// Session 返回当前会话快照
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Address 返回已连接的账户地址。
// 未连接时返回 ErrNoActiveSession，调用方不应拿到空地址。
func (m *Manager) Address() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.State != StateConnected {
		return "", ErrNoActiveSession
	}
	return m.session.Address, nil
}

// Restore 在进程启动时从缓存恢复会话。
// connecting 这种中间态不恢复，一律落回 disconnected。
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var saved Session
	if err := m.store.Get(context.Background(), sessionKey, &saved); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("恢复钱包会话失败", zap.Error(err))
		}
		return
	}

	// 只有完整的 connected 快照才值得恢复
	if saved.State == StateConnected && saved.Address != "" && saved.Network == m.network {
		m.transition(saved)
		logger.Info("钱包会话已恢复", zap.String("address", saved.Address))
		return
	}
	m.transition(Session{State: StateDisconnected, Network: m.network})
}
