package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// maxSnapshotBytes 单次响应体上限
const maxSnapshotBytes = 16 << 20

// RemoteProvider 从表格 Web App 端点拉取快照 JSON
type RemoteProvider struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewRemoteProvider 创建远端来源，timeout <= 0 时使用 15s
func NewRemoteProvider(endpoint string, timeout time.Duration) *RemoteProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteProvider{
		url:    endpoint,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (p *RemoteProvider) Name() string { return "remote" }

// Fetch 追加 ts 参数绕过中间缓存，并要求不缓存响应
func (p *RemoteProvider) Fetch(ctx context.Context) (*model.Snapshot, error) {
	u, err := url.Parse(p.url)
	if err != nil {
		return nil, fmt.Errorf("无效的快照地址: %w", err)
	}
	q := u.Query()
	q.Set("ts", strconv.FormatInt(p.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求快照失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return nil, fmt.Errorf("读取快照失败: %w", err)
	}

	snap, err := model.DecodeSnapshot(body)
	if err != nil {
		return nil, fmt.Errorf("解析快照失败: %w", err)
	}
	return snap, nil
}
