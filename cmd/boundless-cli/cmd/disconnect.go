package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "断开当前钱包会话",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSigner()
		if err != nil {
			return err
		}
		m, err := newWalletManager(s)
		if err != nil {
			return err
		}
		m.Disconnect()
		color.Green("钱包已断开")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
