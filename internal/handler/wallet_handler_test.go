package handler

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
	"github.com/0xdevcollins/boundless-sub003/pkg/signer"
	"github.com/0xdevcollins/boundless-sub003/pkg/soroban"
)

const testAddress = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"

type stubSigner struct {
	err error
}

func (s stubSigner) GetAddress(_ context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return testAddress, nil
}

func (s stubSigner) SignTransaction(_ context.Context, envelope, _ string) (string, error) {
	return envelope, nil
}

func newWalletRouter(s signer.Signer) (*gin.Engine, *wallet.Manager) {
	gin.SetMode(gin.TestMode)
	m := wallet.NewManager(s, soroban.NetworkTestnet, cache.NewMemoryCache(time.Minute, time.Minute))
	h := NewWalletHandler(m)

	r := gin.New()
	r.POST("/wallet/connect", h.Connect)
	r.POST("/wallet/disconnect", h.Disconnect)
	r.GET("/wallet/status", h.Status)
	return r, m
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) response.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWalletConnectEndpoint(t *testing.T) {
	r, _ := newWalletRouter(stubSigner{})

	resp := doRequest(t, r, http.MethodPost, "/wallet/connect")
	assert.Equal(t, errno.OK.Code, resp.Code)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "connected", data["state"])
	assert.Equal(t, testAddress, data["address"])
}

func TestWalletConnectRejected(t *testing.T) {
	r, _ := newWalletRouter(stubSigner{err: signer.ErrRejected})

	resp := doRequest(t, r, http.MethodPost, "/wallet/connect")
	assert.Equal(t, errno.ErrConnectionRejected.Code, resp.Code)
}

func TestWalletConnectUnavailable(t *testing.T) {
	r, _ := newWalletRouter(stubSigner{err: signer.ErrUnavailable})

	resp := doRequest(t, r, http.MethodPost, "/wallet/connect")
	assert.Equal(t, errno.ErrConnectionUnavailable.Code, resp.Code)
}

func TestWalletStatusAndDisconnect(t *testing.T) {
	r, m := newWalletRouter(stubSigner{})

	// 初始状态
	resp := doRequest(t, r, http.MethodGet, "/wallet/status")
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "disconnected", data["state"])

	_, err := m.Connect(context.Background())
	require.NoError(t, err)

	resp = doRequest(t, r, http.MethodPost, "/wallet/disconnect")
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, "disconnected", data["state"])
	assert.Empty(t, data["address"])
}
