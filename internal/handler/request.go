package handler

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title          string `json:"title" binding:"required,max=255"`
	Description    string `json:"description"`
	MetadataURI    string `json:"metadata_uri" binding:"required,max=255"`
	FundingGoal    string `json:"funding_goal" binding:"required"` // 十进制金额字符串
	MilestoneCount uint32 `json:"milestone_count" binding:"required,min=1"`
	Deadline       int64  `json:"deadline" binding:"required"` // Unix 秒
}

// FundProjectRequest 出资请求
type FundProjectRequest struct {
	Amount string `json:"amount" binding:"required"` // 十进制金额字符串
}

// VoteProjectRequest 投票请求，空 body 视为默认一票
type VoteProjectRequest struct {
	Value uint32 `json:"value"`
}

// TxResultView 交易结果的对外视图
type TxResultView struct {
	Hash           string `json:"hash"`
	Status         string `json:"status"`
	Function       string `json:"function"`
	Ledger         uint64 `json:"ledger,omitempty"`
	ReturnValue    string `json:"return_value,omitempty"`
	SequenceNumber uint64 `json:"sequence_number"`
	Attempts       int    `json:"attempts"`
}
