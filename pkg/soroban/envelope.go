package soroban

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/0xdevcollins/boundless-sub003/pkg/crypto_util"
	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
)

// Operation 是信封里的一次合约调用
type Operation struct {
	Contract string      `json:"contract"`
	Function string      `json:"function"`
	Args     []scval.Val `json:"args"`
}

// UnsignedEnvelope 是未签名的交易信封。
// 字段顺序即 JSON 编码顺序，编码是确定性的:
// 相同输入 + 相同序列号 必然产出相同的信封字节和哈希。
type UnsignedEnvelope struct {
	SourceAccount     string      `json:"source_account"`
	SequenceNumber    uint64      `json:"sequence_number"`
	Fee               uint32      `json:"fee"`
	TimeoutSeconds    uint32      `json:"timeout_seconds"`
	NetworkPassphrase string      `json:"network_passphrase"`
	Operations        []Operation `json:"operations"`
}

// Signature 是一条 ed25519 签名记录
type Signature struct {
	PublicKey string `json:"public_key"` // 签名者地址 (G...)
	Signature string `json:"signature"`  // base64 编码的签名
}

// SignedEnvelope 是附带签名的交易信封。
// 哈希只覆盖内层信封，追加签名不改变交易 ID。
type SignedEnvelope struct {
	Envelope   UnsignedEnvelope `json:"envelope"`
	Signatures []Signature      `json:"signatures"`
}

// Encode 将未签名信封编码为 base64(JSON) 字符串
func (e *UnsignedEnvelope) Encode() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("编码交易信封失败: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeUnsigned 从 base64(JSON) 还原未签名信封
func DecodeUnsigned(s string) (*UnsignedEnvelope, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("解码交易信封失败: %w", err)
	}
	var e UnsignedEnvelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("解析交易信封失败: %w", err)
	}
	return &e, nil
}

// Hash 返回信封的 SHA256 哈希 (hex)，即交易 ID
func (e *UnsignedEnvelope) Hash() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("计算信封哈希失败: %w", err)
	}
	return crypto_util.CalculateSHA256(raw), nil
}

// SigningPayload 返回待签名的原始摘要。
// NetworkPassphrase 包含在信封内，摘要天然绑定网络。
func (e *UnsignedEnvelope) SigningPayload() ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("计算签名摘要失败: %w", err)
	}
	return crypto_util.SHA256Bytes(raw), nil
}

// Encode 将签名信封编码为 base64(JSON) 字符串
func (e *SignedEnvelope) Encode() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("编码签名信封失败: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeSigned 从 base64(JSON) 还原签名信封
func DecodeSigned(s string) (*SignedEnvelope, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("解码签名信封失败: %w", err)
	}
	var e SignedEnvelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("解析签名信封失败: %w", err)
	}
	return &e, nil
}

// Hash 返回交易 ID。签名不参与哈希。
func (e *SignedEnvelope) Hash() (string, error) {
	return e.Envelope.Hash()
}
