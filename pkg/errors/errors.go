package errors

import "errors"

// ErrSnapshotUnavailable 尚未成功加载任何快照
var ErrSnapshotUnavailable = errors.New("快照数据尚未加载，请稍后重试")

// ErrSnapshotCacheMiss 缓存中没有可用的快照
var ErrSnapshotCacheMiss = errors.New("快照缓存未命中")
