package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/0xdevcollins/boundless-sub003/pkg/keystore"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "生成或导入助记词并加密保存到本地密钥库",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 选择生成还是导入
		choice := promptui.Select{
			Label: "初始化方式",
			Items: []string{"生成新助记词", "导入已有助记词"},
		}
		idx, _, err := choice.Run()
		if err != nil {
			return err
		}

		var mnemonic string
		if idx == 0 {
			entropy, err := bip39.NewEntropy(128)
			if err != nil {
				return fmt.Errorf("生成熵失败: %w", err)
			}
			mnemonic, err = bip39.NewMnemonic(entropy)
			if err != nil {
				return fmt.Errorf("生成助记词失败: %w", err)
			}
			color.Yellow("请抄写并妥善保管助记词 (仅显示这一次):")
			fmt.Println()
			fmt.Println("  " + mnemonic)
			fmt.Println()
		} else {
			input := promptui.Prompt{
				Label: "助记词",
				Validate: func(s string) error {
					if !bip39.IsMnemonicValid(s) {
						return fmt.Errorf("助记词无效")
					}
					return nil
				},
			}
			mnemonic, err = input.Run()
			if err != nil {
				return err
			}
		}

		// 2. 派生地址
		local, err := signer.NewLocalSigner(mnemonic)
		if err != nil {
			return err
		}
		address, _ := local.GetAddress(cmd.Context())

		// 3. 设置口令并加密落盘
		password, err := readPassword("设置密钥库口令: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("再次输入口令: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("两次输入的口令不一致")
		}

		ks, err := keystore.Encrypt(mnemonic, password, address)
		if err != nil {
			return err
		}
		if err := ks.Save(keystorePath()); err != nil {
			return err
		}

		color.Green("密钥库已创建: %s", keystorePath())
		color.Green("账户地址: %s", address)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
