package crypto_util

import (
	"crypto/sha256"
	"encoding/hex"

	"lukechampine.com/blake3"
)

// CalculateSHA256 计算输入的 SHA256 哈希值。
// 交易信封的哈希 (即交易 ID) 使用该算法。
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// SHA256Bytes 返回原始的 SHA256 摘要 (签名前的 payload)。
func SHA256Bytes(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// CalculateBlake3 计算输入的 Blake3 哈希值。
// 事件去重键 (outbox payload dedup key) 使用该算法。
func CalculateBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
