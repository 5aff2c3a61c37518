package errno

import "fmt"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithDetail returns a copy of the Errno with extra human-readable context.
// The code stays stable so clients can still switch on it.
func (e Errno) WithDetail(detail string) Errno {
	if detail == "" {
		return e
	}
	return Errno{Code: e.Code, Message: fmt.Sprintf("%s: %s", e.Message, detail)}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Message: "Token invalid"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
)

// Business Errors (20000+)
var (
	ErrProjectNotFound   = Errno{Code: 20101, Message: "Project not found"}
	ErrProjectExists     = Errno{Code: 20102, Message: "Project already exists"}
	ErrMilestoneNotFound = Errno{Code: 20201, Message: "Milestone not found"}
)

// Wallet Session Errors (30100+)
var (
	ErrConnectionRejected    = Errno{Code: 30101, Message: "Wallet connection rejected by user"}
	ErrConnectionUnavailable = Errno{Code: 30102, Message: "No wallet signer available"}
	ErrNoActiveSession       = Errno{Code: 30103, Message: "No active wallet session"}
	ErrWalletRequired        = Errno{Code: 30104, Message: "Wallet connection required"}
)

// Transaction Construction Errors (30200+)
var (
	ErrInvalidArgumentType = Errno{Code: 30201, Message: "Invalid contract argument type"}
)

// Signing Errors (30300+)
var (
	ErrSigningRejected   = Errno{Code: 30301, Message: "Transaction signing rejected by user"}
	ErrSignerUnavailable = Errno{Code: 30302, Message: "Transaction signer unavailable"}
)

// Submission / Confirmation Errors (30400+)
var (
	ErrSubmissionRejected = Errno{Code: 30401, Message: "Transaction rejected by the ledger"}
	ErrAttemptInFlight    = Errno{Code: 30402, Message: "Another transaction attempt is in flight"}
	ErrConfirmTimeout     = Errno{Code: 30403, Message: "Transaction confirmation timed out, re-query by hash before retrying"}
	ErrTransactionFailed  = Errno{Code: 30404, Message: "Transaction executed and failed on the ledger"}
)
