package signer

import (
	"context"
	"crypto/ed25519"
	"encoding/base32"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testEnvelope(t *testing.T, passphrase string) string {
	t.Helper()
	env := &soroban.UnsignedEnvelope{
		SourceAccount:     "GSOURCE",
		SequenceNumber:    7,
		Fee:               100,
		TimeoutSeconds:    120,
		NetworkPassphrase: passphrase,
		Operations: []soroban.Operation{{
			Contract: "CCONTRACT",
			Function: "vote_project",
			Args:     []scval.Val{scval.Symbol("proj-1")},
		}},
	}
	encoded, err := env.Encode()
	require.NoError(t, err)
	return encoded
}

func TestNewLocalSignerDeterministic(t *testing.T) {
	a, err := NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	b, err := NewLocalSigner(testMnemonic)
	require.NoError(t, err)

	addrA, _ := a.GetAddress(context.Background())
	addrB, _ := b.GetAddress(context.Background())
	assert.Equal(t, addrA, addrB, "相同助记词必须派生相同地址")
	assert.True(t, strings.HasPrefix(addrA, "G"))
}

func TestNewLocalSignerRejectsInvalidMnemonic(t *testing.T) {
	_, err := NewLocalSigner("not a valid mnemonic at all")
	assert.Error(t, err)
}

func TestSignTransactionProducesVerifiableSignature(t *testing.T) {
	s, err := NewLocalSigner(testMnemonic)
	require.NoError(t, err)
	passphrase := soroban.NetworkTestnet.Passphrase()

	signed, err := s.SignTransaction(context.Background(), testEnvelope(t, passphrase), passphrase)
	require.NoError(t, err)

	env, err := soroban.DecodeSigned(signed)
	require.NoError(t, err)
	require.Len(t, env.Signatures, 1)

	// 签名必须能用公钥验证
	addr, _ := s.GetAddress(context.Background())
	assert.Equal(t, addr, env.Signatures[0].PublicKey)

	pubRaw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimPrefix(addr, "G"))
	require.NoError(t, err)
	sig, err := base64.StdEncoding.DecodeString(env.Signatures[0].Signature)
	require.NoError(t, err)
	payload, err := env.Envelope.SigningPayload()
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(pubRaw), payload, sig))
}

func TestSignTransactionRejectsPassphraseMismatch(t *testing.T) {
	s, err := NewLocalSigner(testMnemonic)
	require.NoError(t, err)

	// 信封是测试网的，但请求签到主网 → 拒签
	envelope := testEnvelope(t, soroban.NetworkTestnet.Passphrase())
	_, err = s.SignTransaction(context.Background(), envelope, soroban.NetworkPublic.Passphrase())
	assert.ErrorIs(t, err, ErrRejected)
}
