package handler

import (
	"errors"

	"github.com/0xdevcollins/boundless-sub003/internal/service"
	"github.com/0xdevcollins/boundless-sub003/internal/service/chain"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/errno"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
)

// toErrno 把服务层的哨兵错误翻译成对外的错误码。
// result 可为 nil；带终态细节时拼进 message。
func toErrno(err error, result *chain.SubmissionResult) error {
	detail := ""
	if result != nil {
		detail = result.ErrorDetail
	}

	switch {
	case errors.Is(err, wallet.ErrNoActiveSession):
		return errno.ErrWalletRequired
	case errors.Is(err, signer.ErrRejected):
		return errno.ErrSigningRejected
	case errors.Is(err, signer.ErrUnavailable):
		return errno.ErrSignerUnavailable
	case errors.Is(err, chain.ErrAttemptInFlight):
		return errno.ErrAttemptInFlight
	case errors.Is(err, chain.ErrSubmissionRejected):
		return errno.ErrSubmissionRejected.WithDetail(detail)
	case errors.Is(err, chain.ErrConfirmTimeout):
		return errno.ErrConfirmTimeout
	case errors.Is(err, chain.ErrTransactionFailed):
		return errno.ErrTransactionFailed.WithDetail(detail)
	case errors.Is(err, service.ErrProjectNotFound):
		return errno.ErrProjectNotFound
	default:
		return err
	}
}
