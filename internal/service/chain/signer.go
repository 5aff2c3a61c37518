package chain

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// Coordinator 负责把未签名信封递交给签名方，并校验拿回的结果。
// 签名方是外部系统，返回值不可信: 内层信封被改动过的一律丢弃。
type Coordinator struct {
	signer  signer.Signer
	network soroban.Network
}

func NewCoordinator(s signer.Signer, network soroban.Network) *Coordinator {
	return &Coordinator{signer: s, network: network}
}

// Sign 签名并返回 (签名信封编码, 交易哈希)。
// 哈希在签名前计算，签名后复核，两者必须一致。
func (c *Coordinator) Sign(ctx context.Context, env *soroban.UnsignedEnvelope) (string, string, error) {
	hash, err := env.Hash()
	if err != nil {
		return "", "", err
	}

	encoded, err := env.Encode()
	if err != nil {
		return "", "", err
	}

	signedEncoded, err := c.signer.SignTransaction(ctx, encoded, c.network.Passphrase())
	if err != nil {
		return "", "", err
	}

	signed, err := soroban.DecodeSigned(signedEncoded)
	if err != nil {
		return "", "", fmt.Errorf("签名方返回了无法解析的信封: %w", err)
	}
	if len(signed.Signatures) == 0 {
		return "", "", fmt.Errorf("签名方返回的信封没有签名")
	}
	// 内层信封必须原封不动
	if !reflect.DeepEqual(signed.Envelope, *env) {
		logger.Error("签名方篡改了交易信封",
			zap.String("expected_hash", hash))
		return "", "", fmt.Errorf("签名方返回的信封与原始信封不一致")
	}

	signedHash, err := signed.Hash()
	if err != nil {
		return "", "", err
	}
	if signedHash != hash {
		return "", "", fmt.Errorf("签名后交易哈希不一致: %s != %s", signedHash, hash)
	}

	return signedEncoded, hash, nil
}
