package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xdevcollins/boundless-sub003/pkg/errno"
)

// Response 是统一的应答信封
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 返回成功应答
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error 返回错误应答。
// HTTP 状态码统一 200，业务结果看 code 字段。
func Error(c *gin.Context, err error) {
	code, message := errno.Decode(err)
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}
