package cmd

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/config"
	"github.com/0xdevcollins/boundless-sub003/pkg/keystore"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

// readPassword 从终端读取口令，不回显
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("读取口令失败: %w", err)
	}
	return string(raw), nil
}

// loadSigner 解锁密钥库并返回本地签名方
func loadSigner() (signer.Signer, error) {
	ks, err := keystore.Load(keystorePath())
	if err != nil {
		return nil, fmt.Errorf("加载密钥库失败 (先执行 boundless-cli init): %w", err)
	}

	password := config.Global.Wallet.Password
	if password == "" {
		password, err = readPassword("密钥库口令: ")
		if err != nil {
			return nil, err
		}
	}

	mnemonic, err := ks.Decrypt(password)
	if err != nil {
		return nil, err
	}
	return signer.NewLocalSigner(mnemonic)
}

// currentNetwork 解析配置里的网络标识
func currentNetwork() (soroban.Network, error) {
	return soroban.ParseNetwork(config.Global.Chain.Network)
}

// newWalletManager 构造绑定本地会话文件的会话管理器
func newWalletManager(s signer.Signer) (*wallet.Manager, error) {
	network, err := currentNetwork()
	if err != nil {
		return nil, err
	}
	m := wallet.NewManager(s, network, cache.NewFileCache(sessionPath()))
	m.Restore()
	return m, nil
}
