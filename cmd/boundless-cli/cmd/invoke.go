package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/0xdevcollins/boundless-sub003/internal/service/chain"
	"github.com/0xdevcollins/boundless-sub003/pkg/config"
	"github.com/0xdevcollins/boundless-sub003/pkg/scval"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <function> [type:value...]",
	Short: "直接发起一次合约调用并等待确认",
	Long: `参数格式为 type:value，支持的类型:
  symbol:create_project  address:G...  u32:3  u64:1000000  i128:123  bool:true

不带类型前缀的参数按字面量推断: 地址 → address，整数 → u64，
true/false → bool，其余 → symbol。

示例:
  boundless-cli invoke vote_project symbol:proj-1 address:GVOTER... u32:1
  boundless-cli invoke get_project proj-1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		call, err := parseCall(args)
		if err != nil {
			return err
		}

		s, err := loadSigner()
		if err != nil {
			return err
		}
		m, err := newWalletManager(s)
		if err != nil {
			return err
		}
		network, err := currentNetwork()
		if err != nil {
			return err
		}

		rpc := soroban.NewHTTPClient(config.Global.Chain.RpcUrl, 30*time.Second)
		pipeline := chain.NewPipeline(
			chain.NewBuilder(rpc, m, config.Global.Chain.ContractAddress, network,
				config.Global.Chain.BaseFee, config.Global.Chain.TimeoutSeconds),
			chain.NewCoordinator(s, network),
			chain.NewSubmitter(rpc, config.Global.Chain.ConfirmMaxAttempts, config.Global.Chain.ConfirmInterval()),
			nil, // CLI 不落库
			network,
		)

		fmt.Printf("调用 %s，等待确认...\n", call.Function)
		result, err := pipeline.Invoke(cmd.Context(), call)
		if result != nil {
			printResult(result)
		}
		if err != nil && !errors.Is(err, chain.ErrTransactionFailed) {
			return err
		}
		return nil
	},
}

// parseCall 把参数串解析成合约调用。
// 带 "type:value" 前缀的显式打标，不带前缀的走字面量推断。
func parseCall(args []string) (chain.Call, error) {
	call := chain.Call{Function: args[0]}
	for _, arg := range args[1:] {
		var (
			val scval.Val
			err error
		)
		if parts := strings.SplitN(arg, ":", 2); len(parts) == 2 {
			val, err = parseVal(parts[0], parts[1])
		} else {
			val, err = inferVal(arg)
		}
		if err != nil {
			return chain.Call{}, err
		}
		call.Args = append(call.Args, val)
	}
	return call, nil
}

// inferVal 按字面量猜测参数的 Go 类型，交给 scval.From 打标。
// 负数等编码不了的值在这里直接失败。
func inferVal(raw string) (scval.Val, error) {
	switch {
	case raw == "true" || raw == "false":
		return scval.From(raw == "true")
	case len(raw) == 56 && (raw[0] == 'G' || raw[0] == 'C'):
		return scval.From(scval.AccountID(raw))
	default:
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return scval.From(n)
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return scval.From(n)
		}
		return scval.From(raw)
	}
}

func parseVal(typ, value string) (scval.Val, error) {
	switch scval.Type(typ) {
	case scval.TypeSymbol:
		return scval.Symbol(value), nil
	case scval.TypeAddress:
		return scval.Address(value), nil
	case scval.TypeU32:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return scval.Val{}, fmt.Errorf("非法的 u32: %q", value)
		}
		return scval.U32(uint32(n)), nil
	case scval.TypeU64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return scval.Val{}, fmt.Errorf("非法的 u64: %q", value)
		}
		return scval.U64(n), nil
	case scval.TypeI128:
		return scval.I128(value), nil
	case scval.TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return scval.Val{}, fmt.Errorf("非法的 bool: %q", value)
		}
		return scval.Bool(b), nil
	default:
		return scval.Val{}, fmt.Errorf("未知的参数类型: %q", typ)
	}
}

func printResult(result *chain.SubmissionResult) {
	fmt.Printf("哈希: %s\n", result.Hash)
	switch result.Status {
	case chain.StatusSuccess:
		color.Green("状态: success (账本 #%d, 轮询 %d 次)", result.Ledger, result.Attempts)
		if result.ReturnValue != "" {
			fmt.Printf("返回值: %s\n", result.ReturnValue)
		}
	case chain.StatusTimedOut:
		color.Yellow("状态: timed_out — 交易仍在途，可稍后按哈希查询")
	default:
		color.Red("状态: %s", result.Status)
		if result.ErrorDetail != "" {
			color.Red("原因: %s", result.ErrorDetail)
		}
	}
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}
