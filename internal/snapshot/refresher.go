package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/metrics"
)

// Status 最近一次刷新尝试的结果
type Status struct {
	LastAttempt time.Time
	LastError   string
}

// Refresher 周期性地从 Provider 拉取快照并发布到 Store
// 刷新失败时保留旧快照
type Refresher struct {
	provider Provider
	store    *Store
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex // 串行化刷新
	statusMu sync.RWMutex
	status   Status
}

// NewRefresher 创建刷新器；interval <= 0 时只在启动与手动触发时刷新
func NewRefresher(provider Provider, store *Store, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		provider: provider,
		store:    store,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh 立即拉取一次快照
func (r *Refresher) Refresh(ctx context.Context) (*Loaded, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	source := r.provider.Name()
	started := r.now()
	snap, err := r.provider.Fetch(ctx)

	var stale *StaleError
	isStale := errors.As(err, &stale) && snap != nil
	if err == nil && snap == nil {
		err = fmt.Errorf("来源 %s 返回空快照", source)
	}
	metrics.RecordSnapshotRefresh(source, err)

	r.setStatus(started, err)

	if err != nil && !isStale {
		r.logger.Warn("快照刷新失败，保留当前快照",
			zap.String("source", source),
			zap.Bool("has_current", r.store.Current() != nil),
			zap.Error(err),
		)
		return nil, err
	}

	// 已有新鲜快照时不用缓存回退覆盖它
	if isStale {
		if cur := r.store.Current(); cur != nil && !cur.Stale {
			r.logger.Warn("快照刷新失败，保留当前快照", zap.String("source", source), zap.Error(err))
			return nil, err
		}
	}

	loaded := r.store.Replace(snap, source, isStale, r.now())
	metrics.SetSnapshotSize(len(snap.Buildings), len(snap.Blackouts), len(snap.Bookings), loaded.FetchedAt)

	fields := []zap.Field{
		zap.String("source", source),
		zap.String("version", loaded.Version),
		zap.Int("buildings", len(snap.Buildings)),
		zap.Int("blackouts", len(snap.Blackouts)),
		zap.Int("bookings", len(snap.Bookings)),
		zap.Duration("took", r.now().Sub(started)),
	}
	if isStale {
		r.logger.Warn("来源不可用，已加载缓存快照", append(fields, zap.Error(err))...)
		return loaded, err
	}
	r.logger.Info("快照已刷新", fields...)
	return loaded, nil
}

// Status 返回最近一次刷新结果
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Refresher) setStatus(at time.Time, err error) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
	r.status.LastError = ""
	if err != nil {
		r.status.LastError = err.Error()
	}
}

// Run 启动时刷新一次，之后按 interval 周期刷新，直到 ctx 取消
func (r *Refresher) Run(ctx context.Context) {
	_, _ = r.Refresh(ctx)

	if r.interval <= 0 {
		r.logger.Info("未配置刷新间隔，仅支持手动刷新")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = r.Refresh(ctx)
		}
	}
}
