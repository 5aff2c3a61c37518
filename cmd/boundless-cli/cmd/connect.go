package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "解锁密钥库并建立钱包会话",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSigner()
		if err != nil {
			return err
		}
		m, err := newWalletManager(s)
		if err != nil {
			return err
		}

		session, err := m.Connect(cmd.Context())
		if err != nil {
			return err
		}

		color.Green("钱包已连接")
		color.Green("地址: %s", session.Address)
		color.Green("网络: %s", session.Network)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
