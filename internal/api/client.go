package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	requestTimeout = 25 * time.Second // 单次请求的最长等待时间
	memoizeTTL     = 30 * time.Second // 短缓存，主要服务于自动补全和详情页的反复请求
	maxErrorBody   = 300              // 错误信息里保留的响应体长度
)

// Client 远端电影 API 的只读客户端。
// 相同 (path, params) 的调用在短时间窗口内直接复用缓存结果，
// 这只是性能优化，不承诺任何一致性（过期即整体替换）。
type Client struct {
	baseURL    string
	httpClient *http.Client
	memo       *cache.Cache
	sf         singleflight.Group
}

// NewClient 创建客户端
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		memo: cache.New(memoizeTTL, time.Minute),
	}
}

// GetJSON 发起 GET 请求并返回原始 JSON。
// 只会返回两类错误："HTTP <status>: <body>" 和 "Request failed: <cause>"，永不 panic。
func (c *Client) GetJSON(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	key := requestKey(path, params)
	if cached, ok := c.memo.Get(key); ok {
		return cached.(json.RawMessage), nil
	}

	// singleflight 合并并发的相同请求
	val, err, _ := c.sf.Do(key, func() (interface{}, error) {
		body, err := c.fetch(ctx, path, params)
		if err != nil {
			return nil, err
		}
		c.memo.SetDefault(key, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(json.RawMessage), nil
}

func (c *Client) fetch(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("Request failed: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Request failed: %v", err)
	}

	if resp.StatusCode >= 400 {
		text := string(body)
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, text)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("Request failed: invalid JSON in response body")
	}
	return json.RawMessage(body), nil
}

// requestKey 缓存键 = path + 按名称排序后的参数，保证相同调用落在同一条缓存上
func requestKey(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}
