package soroban

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Client 是面向链节点的最小 RPC 能力集。
// 上层服务只依赖该接口，测试中可直接替换为桩实现。
type Client interface {
	// GetAccount 查询账户当前序列号
	GetAccount(ctx context.Context, address string) (*Account, error)
	// SendTransaction 提交已签名的交易信封
	SendTransaction(ctx context.Context, envelope string) (*SendResult, error)
	// GetTransaction 按哈希查询交易终态
	GetTransaction(ctx context.Context, hash string) (*TxResult, error)
}

// HTTPClient 是基于 JSON-RPC 2.0 的 Client 实现
type HTTPClient struct {
	endpoint string
	client   *http.Client
	nextID   atomic.Int64
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient 创建 RPC 客户端。timeout 是单次请求的硬超时。
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call 发起一次 JSON-RPC 调用并把 result 解到 out
func (c *HTTPClient) call(ctx context.Context, method string, params, out interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("编码 RPC 请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("构造 RPC 请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC 请求失败 (%s): %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取 RPC 应答失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("RPC 节点返回 HTTP %d: %s", resp.StatusCode, raw)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return fmt.Errorf("解析 RPC 应答失败: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("RPC 错误 (%s): [%d] %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("解析 RPC 结果失败: %w", err)
	}
	return nil
}

func (c *HTTPClient) GetAccount(ctx context.Context, address string) (*Account, error) {
	var account Account
	params := map[string]string{"address": address}
	if err := c.call(ctx, "getAccount", params, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) SendTransaction(ctx context.Context, envelope string) (*SendResult, error) {
	var result SendResult
	params := map[string]string{"transaction": envelope}
	if err := c.call(ctx, "sendTransaction", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetTransaction(ctx context.Context, hash string) (*TxResult, error) {
	var result TxResult
	params := map[string]string{"hash": hash}
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
