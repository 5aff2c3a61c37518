package chain

import (
	"fmt"
	"regexp"
	"strconv"
)

// 合约错误码表。与链上合约的错误枚举保持同步。
var contractErrorMessages = map[int]string{
	1:  "Contract has already been initialized",
	2:  "Invalid user authorization for action",
	3:  "Project with the given ID already exists",
	4:  "Project with the given ID does not exist",
	5:  "Invalid funding target amount",
	6:  "Invalid milestone count",
	7:  "Project is closed",
	8:  "Funding period has ended",
	9:  "Voting period has ended",
	10: "User has already voted",
	11: "User has not voted",
	12: "Invalid vote value",
	13: "Milestone has already been released",
	14: "Milestone has already been approved",
	15: "Milestone has already been rejected",
	16: "Insufficient funds",
	17: "Refund already processed",
	18: "Invalid operation for current project status",
	19: "Internal error",
	20: "Token contract has already been whitelisted",
	21: "Token contract has not been whitelisted",
	22: "No backers found for the project",
	23: "Transfer failed",
	24: "Balance check failed",
}

// 节点返回的合约错误形如 "Error(Contract, #7)"，个别版本不带 #
var contractErrorPattern = regexp.MustCompile(`Error\(Contract,\s*#?(\d+)\)`)

// DecodeContractError 把节点返回的原始错误串翻译成可读信息。
// 识别不了的原样返回，不丢失信息。
func DecodeContractError(raw string) string {
	match := contractErrorPattern.FindStringSubmatch(raw)
	if match == nil {
		return raw
	}
	code, err := strconv.Atoi(match[1])
	if err != nil {
		return raw
	}
	msg, ok := contractErrorMessages[code]
	if !ok {
		return fmt.Sprintf("unknown contract error #%d", code)
	}
	return fmt.Sprintf("contract error #%d: %s", code, msg)
}
