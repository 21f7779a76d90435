package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/config"
	apperrors "github.com/mikolajradlinski-prog/stand-dashboard/pkg/errors"
)

// Client Redis 客户端封装
// 用于接口限流与最近一次成功快照的缓存
type Client struct {
	rdb    goredis.UniversalClient
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromUniversal 包装已有的 go-redis 客户端（测试或集群模式使用）
func NewFromUniversal(rdb goredis.UniversalClient, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── 滑动窗口限流 ──

// CheckRateLimit 判断 key 在 window 内的请求数是否未超过 limit
// 使用有序集合记录每次请求的时间戳
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	minScore := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", minScore)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("限流计数失败: %w", err)
	}

	return card.Val() <= int64(limit), nil
}

// ── 快照缓存 ──

const snapshotKey = "stand:snapshot:last"

// SaveSnapshot 保存最近一次成功拉取的原始快照 JSON
func (c *Client) SaveSnapshot(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, snapshotKey, payload, ttl).Err()
}

// LoadSnapshot 读取缓存的快照 JSON，不存在时返回 ErrSnapshotCacheMiss
func (c *Client) LoadSnapshot(ctx context.Context) ([]byte, error) {
	b, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, apperrors.ErrSnapshotCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
