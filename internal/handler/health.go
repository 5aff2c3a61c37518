package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/0xdevcollins/boundless-sub003/internal/handler/response"
)

// Health 健康检查
// @Summary 健康检查
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
