package server

import (
	"github.com/gin-gonic/gin"

	"github.com/0xdevcollins/boundless-sub003/internal/handler/response"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/errno"
)

// RequireWallet 拦截所有需要签名的接口。
// 没有活跃会话直接打回，请求不会碰到链。
func RequireWallet(w *wallet.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !w.Session().Connected() {
			response.Error(c, errno.ErrWalletRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
