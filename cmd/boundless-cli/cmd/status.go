package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "查看当前钱包会话状态",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 只读会话文件，不需要解锁密钥库
		store := cache.NewFileCache(sessionPath())
		var session wallet.Session
		err := store.Get(context.Background(), "boundless:wallet:session", &session)
		if err != nil {
			if errors.Is(err, cache.ErrMiss) {
				color.Yellow("状态: disconnected (从未连接)")
				return nil
			}
			return err
		}

		fmt.Printf("状态: %s\n", session.State)
		if session.Connected() {
			color.Green("地址: %s", session.Address)
			fmt.Printf("网络: %s\n", session.Network)
			fmt.Printf("连接时间: %s\n", session.ConnectedAt.Format("2006-01-02 15:04:05"))
		}
		if session.LastError != "" {
			color.Red("最近错误: %s", session.LastError)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
