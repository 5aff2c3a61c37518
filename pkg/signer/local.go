package signer

import (
	"context"
	"crypto/ed25519"
	"encoding/base32"
	"encoding/base64"
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// LocalSigner 从助记词派生 ed25519 密钥对，在进程内签名。
// 用于 CLI 和服务端自持账户，浏览器钱包场景用 BridgeSigner。
type LocalSigner struct {
	priv    ed25519.PrivateKey
	address string
}

var _ Signer = (*LocalSigner)(nil)

// NewLocalSigner 校验助记词并派生密钥。
// 派生是确定性的: 相同助记词永远得到相同地址。
func NewLocalSigner(mnemonic string) (*LocalSigner, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("无效的助记词")
	}
	seed := bip39.NewSeed(mnemonic, "")
	priv := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])
	pub := priv.Public().(ed25519.PublicKey)
	return &LocalSigner{
		priv:    priv,
		address: EncodeAddress(pub),
	}, nil
}

// EncodeAddress 把 ed25519 公钥编码为 G 前缀的账户地址
func EncodeAddress(pub ed25519.PublicKey) string {
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(pub)
	return "G" + encoded
}

func (s *LocalSigner) GetAddress(_ context.Context) (string, error) {
	return s.address, nil
}

func (s *LocalSigner) SignTransaction(_ context.Context, envelope string, passphrase string) (string, error) {
	env, err := soroban.DecodeUnsigned(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	// 网络不一致直接拒签
	if env.NetworkPassphrase != passphrase {
		return "", fmt.Errorf("%w: 网络 passphrase 不一致", ErrRejected)
	}

	payload, err := env.SigningPayload()
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(s.priv, payload)

	signed := &soroban.SignedEnvelope{
		Envelope: *env,
		Signatures: []soroban.Signature{{
			PublicKey: s.address,
			Signature: base64.StdEncoding.EncodeToString(sig),
		}},
	}
	return signed.Encode()
}
