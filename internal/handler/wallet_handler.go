package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/0xdevcollins/boundless-sub003/internal/handler/response"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/errno"
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
)

// WalletHandler 钱包会话接口
type WalletHandler struct {
	wallet *wallet.Manager
}

func NewWalletHandler(w *wallet.Manager) *WalletHandler {
	return &WalletHandler{wallet: w}
}

// Connect 发起钱包连接
// @Summary 连接钱包
// @Description 向签名端发起连接握手，成功后会话进入 connected
// @Tags wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/connect [post]
func (h *WalletHandler) Connect(c *gin.Context) {
	session, err := h.wallet.Connect(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, signer.ErrRejected):
			response.Error(c, errno.ErrConnectionRejected)
		default:
			response.Error(c, errno.ErrConnectionUnavailable.WithDetail(err.Error()))
		}
		return
	}
	response.Success(c, session)
}

// Disconnect 断开钱包
// @Summary 断开钱包连接
// @Tags wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/disconnect [post]
func (h *WalletHandler) Disconnect(c *gin.Context) {
	response.Success(c, h.wallet.Disconnect())
}

// Status 查询会话状态
// @Summary 查询钱包会话状态
// @Tags wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/status [get]
func (h *WalletHandler) Status(c *gin.Context) {
	response.Success(c, h.wallet.Session())
}
