package soroban

// Account 是 RPC 返回的账户快照
type Account struct {
	AccountID string `json:"account_id"`
	Sequence  uint64 `json:"sequence,string"`
}

// sendTransaction 的状态枚举
const (
	SendStatusPending       = "PENDING"
	SendStatusDuplicate     = "DUPLICATE"
	SendStatusTryAgainLater = "TRY_AGAIN_LATER"
	SendStatusError         = "ERROR"
)

// getTransaction 的状态枚举
const (
	TxStatusNotFound = "NOT_FOUND"
	TxStatusSuccess  = "SUCCESS"
	TxStatusFailed   = "FAILED"
)

// SendResult 是 sendTransaction 的应答
type SendResult struct {
	Status      string `json:"status"`
	Hash        string `json:"hash"`
	ErrorResult string `json:"errorResult,omitempty"`
}

// TxResult 是 getTransaction 的应答
type TxResult struct {
	Status      string `json:"status"`
	Ledger      uint64 `json:"ledger,omitempty"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
	ReturnValue string `json:"returnValue,omitempty"`
	ResultError string `json:"resultError,omitempty"`
}
