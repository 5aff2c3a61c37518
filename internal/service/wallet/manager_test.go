package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

const fakeAddress = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"

// fakeSigner 可脚本化的签名桩
type fakeSigner struct {
	address string
	addrErr error
}

func (f *fakeSigner) GetAddress(_ context.Context) (string, error) {
	if f.addrErr != nil {
		return "", f.addrErr
	}
	return f.address, nil
}

func (f *fakeSigner) SignTransaction(_ context.Context, envelope, _ string) (string, error) {
	return envelope, nil
}

func newTestManager(s signer.Signer) *Manager {
	return NewManager(s, soroban.NetworkTestnet, cache.NewMemoryCache(time.Minute, time.Minute))
}

func TestConnectSuccess(t *testing.T) {
	m := newTestManager(&fakeSigner{address: fakeAddress})

	session, err := m.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConnected, session.State)
	assert.Equal(t, fakeAddress, session.Address)
	assert.False(t, session.ConnectedAt.IsZero())

	addr, err := m.Address()
	require.NoError(t, err)
	assert.Equal(t, fakeAddress, addr)
}

func TestConnectRejectedEntersErrorState(t *testing.T) {
	fake := &fakeSigner{addrErr: signer.ErrRejected}
	m := newTestManager(fake)

	session, err := m.Connect(context.Background())
	require.ErrorIs(t, err, signer.ErrRejected)
	// 连接失败一律进入 error，拒绝也不例外
	assert.Equal(t, StateError, session.State)
	assert.Empty(t, session.Address)
	assert.NotEmpty(t, session.LastError)

	// 持有人改主意后再发起一次即可恢复
	fake.addrErr = nil
	fake.address = fakeAddress
	session, err = m.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConnected, session.State)
}

func TestConnectUnavailableEntersErrorState(t *testing.T) {
	m := newTestManager(&fakeSigner{addrErr: signer.ErrUnavailable})

	session, err := m.Connect(context.Background())
	require.ErrorIs(t, err, signer.ErrUnavailable)
	assert.Equal(t, StateError, session.State)
	assert.Empty(t, session.Address)

	// error 状态下不能取地址
	_, err = m.Address()
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestDisconnectClearsAddress(t *testing.T) {
	m := newTestManager(&fakeSigner{address: fakeAddress})

	_, err := m.Connect(context.Background())
	require.NoError(t, err)

	session := m.Disconnect()
	assert.Equal(t, StateDisconnected, session.State)
	assert.Empty(t, session.Address)

	_, err = m.Address()
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestErrorStateRecoverableByReconnect(t *testing.T) {
	fake := &fakeSigner{addrErr: signer.ErrUnavailable}
	m := newTestManager(fake)

	_, err := m.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateError, m.Session().State)

	// 签名端恢复后重连成功
	fake.addrErr = nil
	fake.address = fakeAddress
	session, err := m.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConnected, session.State)
}

func TestRestoreConnectedSession(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)

	first := NewManager(&fakeSigner{address: fakeAddress}, soroban.NetworkTestnet, store)
	_, err := first.Connect(context.Background())
	require.NoError(t, err)

	// 模拟进程重启: 新 Manager 共享同一个存储
	second := NewManager(&fakeSigner{address: fakeAddress}, soroban.NetworkTestnet, store)
	second.Restore()
	assert.Equal(t, StateConnected, second.Session().State)
	assert.Equal(t, fakeAddress, second.Session().Address)
}

func TestRestoreIgnoresOtherNetwork(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)

	first := NewManager(&fakeSigner{address: fakeAddress}, soroban.NetworkTestnet, store)
	_, err := first.Connect(context.Background())
	require.NoError(t, err)

	// 网络不一致的会话不恢复
	second := NewManager(&fakeSigner{address: fakeAddress}, soroban.NetworkPublic, store)
	second.Restore()
	assert.Equal(t, StateDisconnected, second.Session().State)
}

func TestRestoreEmptyStore(t *testing.T) {
	m := newTestManager(&fakeSigner{address: fakeAddress})
	m.Restore()
	assert.Equal(t, StateDisconnected, m.Session().State)
}
