package cmd

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/0xdevcollins/boundless-sub003/pkg/config"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "boundless-cli",
	Short: "Boundless 链上操作命令行工具",
	Long:  "管理本地钱包、连接会话，并直接发起链上合约调用。",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
		logger.Init(config.Global.App.Env)
	},
}

// Execute 运行 CLI 入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("错误: %v", err)
		os.Exit(1)
	}
}

// dataDir 返回 CLI 的本地数据目录 (~/.boundless)
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".boundless"
	}
	return filepath.Join(home, ".boundless")
}

// sessionPath 钱包会话文件
func sessionPath() string {
	return filepath.Join(dataDir(), "session.json")
}

// keystorePath 密钥库文件 (配置优先)
func keystorePath() string {
	if config.Global.Wallet.KeystorePath != "" && config.Global.Wallet.KeystorePath != "wallet.json" {
		return config.Global.Wallet.KeystorePath
	}
	return filepath.Join(dataDir(), "wallet.json")
}
