// Package snapshot 负责获取、缓存与替换领域快照。
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// Provider 快照来源
type Provider interface {
	// Name 来源名称，用于日志与指标标签
	Name() string
	// Fetch 拉取一份完整快照
	Fetch(ctx context.Context) (*model.Snapshot, error)
}

// ErrFetchStatus 远端返回非 2xx 状态码
var ErrFetchStatus = errors.New("快照源返回非成功状态码")

// StatusError 携带远端 HTTP 状态码，可用 errors.Is(err, ErrFetchStatus) 判断
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Błąd pobierania: %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrFetchStatus }

// StaleError 来源拉取失败，但返回了缓存中的旧快照
// 此时 Fetch 同时返回非 nil 快照与该错误
type StaleError struct {
	Cause error
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("使用缓存快照: %v", e.Cause)
}

func (e *StaleError) Unwrap() error { return e.Cause }
