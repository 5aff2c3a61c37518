package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BridgeSigner 通过本地 HTTP 桥接服务转发签名请求，
// 由浏览器扩展钱包的持有人逐笔审批。进程内不接触私钥。
type BridgeSigner struct {
	baseURL string
	client  *http.Client
}

var _ Signer = (*BridgeSigner)(nil)

func NewBridgeSigner(baseURL string, timeout time.Duration) *BridgeSigner {
	return &BridgeSigner{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type bridgeAddressResponse struct {
	Address string `json:"address"`
}

type bridgeSignRequest struct {
	Transaction       string `json:"transaction"`
	NetworkPassphrase string `json:"network_passphrase"`
}

type bridgeSignResponse struct {
	SignedTransaction string `json:"signed_transaction"`
}

func (s *BridgeSigner) GetAddress(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/address", nil)
	if err != nil {
		return "", fmt.Errorf("构造签名桥请求失败: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := decodeBridgeStatus(resp); err != nil {
		return "", err
	}
	var out bridgeAddressResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("解析签名桥应答失败: %w", err)
	}
	if out.Address == "" {
		return "", fmt.Errorf("%w: 签名桥未返回地址", ErrUnavailable)
	}
	return out.Address, nil
}

func (s *BridgeSigner) SignTransaction(ctx context.Context, envelope string, passphrase string) (string, error) {
	body, err := json.Marshal(bridgeSignRequest{
		Transaction:       envelope,
		NetworkPassphrase: passphrase,
	})
	if err != nil {
		return "", fmt.Errorf("编码签名请求失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sign", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("构造签名桥请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := decodeBridgeStatus(resp); err != nil {
		return "", err
	}
	var out bridgeSignResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("解析签名桥应答失败: %w", err)
	}
	if out.SignedTransaction == "" {
		return "", fmt.Errorf("%w: 签名桥未返回签名信封", ErrRejected)
	}
	return out.SignedTransaction, nil
}

// decodeBridgeStatus 把桥接服务的 HTTP 状态码归类到两种失败
func decodeBridgeStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusForbidden:
		// 持有人在钱包弹窗里点了拒绝
		return fmt.Errorf("%w: 持有人拒绝", ErrRejected)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, resp.StatusCode, raw)
	}
}
