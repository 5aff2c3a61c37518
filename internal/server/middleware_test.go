package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdevcollins/boundless-sub003/internal/handler/response"
	"github.com/0xdevcollins/boundless-sub003/internal/service/wallet"
	"github.com/0xdevcollins/boundless-sub003/pkg/cache"
	"github.com/0xdevcollins/boundless-sub003/pkg/errno"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

type okSigner struct{}

func (okSigner) GetAddress(_ context.Context) (string, error) {
	return "GTEST", nil
}

func (okSigner) SignTransaction(_ context.Context, envelope, _ string) (string, error) {
	return envelope, nil
}

func TestRequireWalletBlocksWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := wallet.NewManager(okSigner{}, soroban.NetworkTestnet, cache.NewMemoryCache(time.Minute, time.Minute))

	r := gin.New()
	r.POST("/protected", RequireWallet(m), func(c *gin.Context) {
		response.Success(c, gin.H{"reached": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/protected", nil))

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errno.ErrWalletRequired.Code, resp.Code)
}

func TestRequireWalletPassesWithSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := wallet.NewManager(okSigner{}, soroban.NetworkTestnet, cache.NewMemoryCache(time.Minute, time.Minute))
	_, err := m.Connect(context.Background())
	require.NoError(t, err)

	r := gin.New()
	r.POST("/protected", RequireWallet(m), func(c *gin.Context) {
		response.Success(c, gin.H{"reached": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/protected", nil))

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errno.OK.Code, resp.Code)
}
