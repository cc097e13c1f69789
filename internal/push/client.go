// Package push 封装对外部推送网关的 HTTP 调用。
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/delicute/delicute-api/internal/config"

	"github.com/go-resty/resty/v2"
)

// Message 单次推送内容
type Message struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url,omitempty"`
}

// Result 网关返回的逐令牌结果
type Result struct {
	SentCount     int      `json:"sent_count"`
	FailCount     int      `json:"fail_count"`
	InvalidTokens []string `json:"invalid_tokens"`
}

// Client 推送网关客户端
type Client struct {
	http    *resty.Client
	enabled bool
	apiKey  string
	gateway string
}

// NewClient 创建推送客户端
func NewClient(cfg *config.PushConfig) *Client {
	if cfg == nil || !cfg.Enabled || cfg.Gateway == "" {
		return &Client{enabled: false}
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	http := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries)
	return &Client{
		http:    http,
		enabled: true,
		apiKey:  cfg.APIKey,
		gateway: cfg.Gateway,
	}
}

// Enabled 判断推送是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.http != nil
}

// Send 向一批设备令牌投递消息
// 网关未启用时静默跳过并返回零结果。
func (c *Client) Send(ctx context.Context, tokens []string, msg Message) (Result, error) {
	result := Result{}
	if !c.Enabled() || len(tokens) == 0 {
		return result, nil
	}

	body := map[string]interface{}{
		"tokens":  tokens,
		"message": msg,
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(body).
		Post(c.gateway + "/v1/messages")
	if err != nil {
		return result, err
	}
	if resp.StatusCode() != 200 {
		return result, fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode(), resp.Body())
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return result, fmt.Errorf("invalid push gateway response: %w", err)
	}
	return result, nil
}
