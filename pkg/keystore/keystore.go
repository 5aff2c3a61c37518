package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"github.com/0xdevcollins/boundless-sub003/pkg/safe_random"
)

// KDFParams 是 scrypt 的参数组。
// 默认参数面向交互式解锁，测试可以换用轻量参数。
type KDFParams struct {
	N      int `json:"n"`
	R      int `json:"r"`
	P      int `json:"p"`
	KeyLen int `json:"dklen"`
}

// DefaultKDFParams 返回生产级 scrypt 参数
func DefaultKDFParams() KDFParams {
	return KDFParams{N: 262144, R: 8, P: 1, KeyLen: 32}
}

// LightKDFParams 返回轻量参数，仅用于测试
func LightKDFParams() KDFParams {
	return KDFParams{N: 4096, R: 8, P: 1, KeyLen: 32}
}

// File 是落盘的密钥库文件格式。
// 助记词以 AES-256-GCM 加密存放，密钥由口令经 scrypt 派生。
type File struct {
	ID         string    `json:"id"`
	Version    int       `json:"version"`
	Address    string    `json:"address"`
	Salt       string    `json:"salt"`
	Nonce      string    `json:"nonce"`
	Ciphertext string    `json:"ciphertext"`
	KDF        KDFParams `json:"kdf"`
}

const fileVersion = 1

// Encrypt 用默认参数加密助记词
func Encrypt(mnemonic, password, address string) (*File, error) {
	return EncryptWithParams(mnemonic, password, address, DefaultKDFParams())
}

// EncryptWithParams 用指定的 scrypt 参数加密助记词
func EncryptWithParams(mnemonic, password, address string, params KDFParams) (*File, error) {
	salt, err := safe_random.GenerateRandomBytes(32)
	if err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.KeyLen)
	if err != nil {
		return nil, fmt.Errorf("派生加密密钥失败: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("初始化加密器失败: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("初始化 GCM 失败: %w", err)
	}
	nonce, err := safe_random.GenerateRandomBytes(gcm.NonceSize())
	if err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(mnemonic), nil)
	return &File{
		ID:         uuid.NewString(),
		Version:    fileVersion,
		Address:    address,
		Salt:       hex.EncodeToString(salt),
		Nonce:      hex.EncodeToString(nonce),
		Ciphertext: hex.EncodeToString(ciphertext),
		KDF:        params,
	}, nil
}

// Decrypt 用口令解出助记词。口令错误时 GCM 认证失败。
func (f *File) Decrypt(password string) (string, error) {
	salt, err := hex.DecodeString(f.Salt)
	if err != nil {
		return "", fmt.Errorf("密钥库文件损坏 (salt): %w", err)
	}
	nonce, err := hex.DecodeString(f.Nonce)
	if err != nil {
		return "", fmt.Errorf("密钥库文件损坏 (nonce): %w", err)
	}
	ciphertext, err := hex.DecodeString(f.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("密钥库文件损坏 (ciphertext): %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, f.KDF.N, f.KDF.R, f.KDF.P, f.KDF.KeyLen)
	if err != nil {
		return "", fmt.Errorf("派生解密密钥失败: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("初始化解密器失败: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("初始化 GCM 失败: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("解密失败，口令可能不正确: %w", err)
	}
	return string(plaintext), nil
}

// Save 将密钥库文件写到磁盘，权限 0600
func (f *File) Save(path string) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("编码密钥库文件失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("创建密钥库目录失败: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("写入密钥库文件失败: %w", err)
	}
	return nil
}

// Load 从磁盘读取密钥库文件
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取密钥库文件失败: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("解析密钥库文件失败: %w", err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("不支持的密钥库版本: %d", f.Version)
	}
	return &f, nil
}
