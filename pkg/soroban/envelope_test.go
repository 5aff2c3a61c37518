package soroban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
)

func sampleEnvelope() *UnsignedEnvelope {
	return &UnsignedEnvelope{
		SourceAccount:     "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ",
		SequenceNumber:    42,
		Fee:               100,
		TimeoutSeconds:    120,
		NetworkPassphrase: NetworkTestnet.Passphrase(),
		Operations: []Operation{{
			Contract: "CCCVHFXEQ5RBRRW4YX35TZ5X4D5ZZVLORIQXJB6ECI2BY5HBYBLD34PZ",
			Function: "fund_project",
			Args:     []scval.Val{scval.Symbol("proj-1"), scval.U64(5000000)},
		}},
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := sampleEnvelope()

	encoded, err := env.Encode()
	require.NoError(t, err)

	decoded, err := DecodeUnsigned(encoded)
	require.NoError(t, err)
	assert.Equal(t, env, decoded)
}

func TestEnvelopeHashDeterministic(t *testing.T) {
	a := sampleEnvelope()
	b := sampleEnvelope()

	hashA, err := a.Hash()
	require.NoError(t, err)
	hashB, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB, "相同输入必须产出相同的交易 ID")

	// 序列号变化 → 哈希必须变化
	b.SequenceNumber++
	hashC, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashC)
}

func TestSignedEnvelopeHashIgnoresSignatures(t *testing.T) {
	env := sampleEnvelope()
	want, err := env.Hash()
	require.NoError(t, err)

	signed := &SignedEnvelope{
		Envelope: *env,
		Signatures: []Signature{{
			PublicKey: "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ",
			Signature: "c2lnbmF0dXJl",
		}},
	}
	got, err := signed.Hash()
	require.NoError(t, err)
	assert.Equal(t, want, got, "追加签名不能改变交易 ID")
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("TESTNET")
	require.NoError(t, err)
	assert.Equal(t, NetworkTestnet, n)
	assert.NotEmpty(t, n.Passphrase())

	_, err = ParseNetwork("MAINNET")
	assert.Error(t, err)
}
