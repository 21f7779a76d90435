package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// SnapshotCache 最近一次成功快照的持久缓存（pkg/redis.Client 实现）
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, payload []byte, ttl time.Duration) error
	LoadSnapshot(ctx context.Context) ([]byte, error)
}

// CachedProvider 成功时写入缓存，失败时回退到缓存中的旧快照
type CachedProvider struct {
	inner  Provider
	cache  SnapshotCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider 包装一个来源
func NewCachedProvider(inner Provider, cache SnapshotCache, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

func (p *CachedProvider) Fetch(ctx context.Context) (*model.Snapshot, error) {
	snap, err := p.inner.Fetch(ctx)
	if err == nil {
		if payload, mErr := json.Marshal(snap); mErr != nil {
			p.logger.Warn("序列化快照失败，跳过缓存", zap.Error(mErr))
		} else if sErr := p.cache.SaveSnapshot(ctx, payload, p.ttl); sErr != nil {
			p.logger.Warn("写入快照缓存失败", zap.Error(sErr))
		}
		return snap, nil
	}

	payload, cErr := p.cache.LoadSnapshot(ctx)
	if cErr != nil {
		p.logger.Debug("快照缓存不可用", zap.Error(cErr))
		return nil, err
	}
	cached, dErr := model.DecodeSnapshot(payload)
	if dErr != nil {
		p.logger.Warn("缓存快照损坏", zap.Error(dErr))
		return nil, err
	}
	return cached, &StaleError{Cause: err}
}
