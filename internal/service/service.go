package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/config"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/calendar"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/snapshot"
	apperrors "github.com/mikolajradlinski-prog/stand-dashboard/pkg/errors"
)

// SnapshotSource 当前快照的只读来源（snapshot.Store 实现）
type SnapshotSource interface {
	Current() *snapshot.Loaded
}

// SnapshotRefresher 手动刷新入口（snapshot.Refresher 实现）
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (*snapshot.Loaded, error)
	Status() snapshot.Status
}

// Service 所有 Service 的聚合入口
type Service struct {
	Calendar    CalendarService
	Export      ExportService
	Diagnostics DiagnosticsService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	source SnapshotSource,
	refresher SnapshotRefresher,
	logger *zap.Logger,
) (*Service, error) {
	loc, err := cfg.Source.LoadLocation()
	if err != nil {
		return nil, fmt.Errorf("加载时区失败: %w", err)
	}

	calendarSvc, err := NewCalendarService(source, loc, cfg.Feature.MemoSize, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Calendar:    calendarSvc,
		Export:      NewExportService(source, loc, logger),
		Diagnostics: NewDiagnosticsService(source, refresher, logger),
	}, nil
}

// ── 共享辅助 ──

// currentSnapshot 取当前快照，未加载时返回 ErrSnapshotUnavailable
func currentSnapshot(source SnapshotSource) (*snapshot.Loaded, error) {
	loaded := source.Current()
	if loaded == nil || loaded.Snapshot == nil {
		return nil, apperrors.ErrSnapshotUnavailable
	}
	return loaded, nil
}

func toSnapshotInfo(l *snapshot.Loaded) dto.SnapshotInfo {
	return dto.SnapshotInfo{
		Version:   l.Version,
		Source:    l.Source,
		FetchedAt: l.FetchedAt.Format(time.RFC3339),
		Stale:     l.Stale,
	}
}

// clock 日历时区下的“今天”与锚定日期解析
type clock struct {
	loc *time.Location
	now func() time.Time
}

// today 日历时区下的当天零点
func (c clock) today() time.Time {
	n := c.now().In(c.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

// anchor 解析锚定日期，空值取当天
func (c clock) anchor(raw string) time.Time {
	if raw == "" {
		return c.today()
	}
	return calendar.ParseISODateIn(raw, c.loc)
}
