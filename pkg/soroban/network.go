package soroban

import "fmt"

// Network 是目标链网络的标识。
// 每个网络绑定一个唯一的 passphrase，签名时混入 passphrase
// 保证测试网签名无法在主网重放。
type Network string

const (
	NetworkTestnet Network = "TESTNET"
	NetworkPublic  Network = "PUBLIC"
)

var passphrases = map[Network]string{
	NetworkTestnet: "Test SDF Network ; September 2015",
	NetworkPublic:  "Public Global Stellar Network ; September 2015",
}

// ParseNetwork 解析网络标识字符串，未知网络直接报错。
func ParseNetwork(s string) (Network, error) {
	n := Network(s)
	if _, ok := passphrases[n]; !ok {
		return "", fmt.Errorf("未知的网络标识: %q", s)
	}
	return n, nil
}

// Passphrase 返回该网络的 passphrase
func (n Network) Passphrase() string {
	return passphrases[n]
}

// Valid 报告网络标识是否已知
func (n Network) Valid() bool {
	_, ok := passphrases[n]
	return ok
}
