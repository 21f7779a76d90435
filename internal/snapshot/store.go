package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// Loaded 一次成功加载的快照及其元信息
// 发布后只读，刷新时整体替换
type Loaded struct {
	Snapshot  *model.Snapshot
	Version   string
	FetchedAt time.Time
	Source    string
	Stale     bool // 来自缓存回退
}

// Store 当前快照的原子持有者
type Store struct {
	cur atomic.Pointer[Loaded]
}

// NewStore 创建空 Store
func NewStore() *Store {
	return &Store{}
}

// Current 返回当前快照，未加载时返回 nil
func (s *Store) Current() *Loaded {
	return s.cur.Load()
}

// Replace 发布新快照并返回其元信息
func (s *Store) Replace(snap *model.Snapshot, source string, stale bool, at time.Time) *Loaded {
	l := &Loaded{
		Snapshot:  snap,
		Version:   uuid.NewString(),
		FetchedAt: at,
		Source:    source,
		Stale:     stale,
	}
	s.cur.Store(l)
	return l
}
