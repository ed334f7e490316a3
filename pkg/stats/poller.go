package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/botdash/pkg/config"
)

// ErrBadStatus 数据源返回了非 2xx 状态码
var ErrBadStatus = errors.New("stats source returned bad status")

// maxBodySize 统计 JSON 的大小上限
const maxBodySize = 1 << 20

// Poller 定时拉取统计数据
//
// 失败时保留最后一次成功的数据；只有在从未成功过的情况下才会进入 Offline 状态。
// Snapshot 可以在任意 goroutine 中调用。
type Poller struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	logger   *zap.Logger
	now      func() time.Time

	mu   sync.RWMutex
	snap Snapshot
}

// NewPoller 创建轮询器
//
// 参数：
//   - cfg: 数据源地址、轮询间隔与超时
//   - client: HTTP 客户端，nil 时使用 http.DefaultClient
//   - logger: 日志，nil 时不输出
func NewPoller(cfg config.StatsConfig, client *http.Client, logger *zap.Logger) *Poller {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		url:      cfg.URL,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		client:   client,
		logger:   logger.Named("stats"),
		now:      time.Now,
	}
}

// Run 立即拉取一次，之后每个间隔拉取一次，直到 ctx 取消
//
// 单次拉取失败不会终止轮询。ctx 取消时返回 nil。
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.Fetch(ctx); err != nil && ctx.Err() == nil {
			p.logger.Info("cannot fetch stats", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Fetch 执行一次拉取并更新快照
func (p *Poller) Fetch(ctx context.Context) error {
	stats, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.snap.LastError = err
		if p.snap.Stats == nil {
			p.snap.Status = StatusOffline
		}
		return err
	}

	p.snap = Snapshot{
		Stats:     stats,
		Status:    StatusOnline,
		UpdatedAt: p.now(),
	}
	p.logger.Debug("stats updated",
		zap.Int64("users", stats.Users), zap.Int64("servers", stats.Servers), zap.Int("latency", stats.Latency))
	return nil
}

// Snapshot 返回当前状态的副本
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *Poller) fetch(ctx context.Context) (*BotStats, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	target, err := p.requestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	var stats BotStats
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return &stats, nil
}

// requestURL 附加时间戳参数，绕过 CDN 缓存
func (p *Poller) requestURL() (string, error) {
	u, err := url.Parse(p.url)
	if err != nil {
		return "", fmt.Errorf("invalid stats url %q: %w", p.url, err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(p.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
