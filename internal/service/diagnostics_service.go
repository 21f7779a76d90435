package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/calendar"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
)

// ── 诊断模块业务错误 ──

var (
	ErrRefreshFailed = errors.New("快照刷新失败")
)

// DiagnosticsService 调试面板、自检与手动刷新
type DiagnosticsService interface {
	Stats(ctx context.Context) (*dto.SnapshotStatsResponse, error)
	SelfTest(ctx context.Context) (*dto.SelfTestResponse, error)
	Refresh(ctx context.Context) (*dto.SnapshotInfo, error)
}

type diagnosticsService struct {
	source    SnapshotSource
	refresher SnapshotRefresher
	logger    *zap.Logger
}

// NewDiagnosticsService 创建 DiagnosticsService 实例
func NewDiagnosticsService(source SnapshotSource, refresher SnapshotRefresher, logger *zap.Logger) DiagnosticsService {
	return &diagnosticsService{source: source, refresher: refresher, logger: logger}
}

func (s *diagnosticsService) Stats(ctx context.Context) (*dto.SnapshotStatsResponse, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	st := calendar.Stats(loaded.Snapshot)
	resp := &dto.SnapshotStatsResponse{
		Buildings: st.Buildings,
		Blackouts: st.Blackouts,
		Bookings:  st.Bookings,
		Snapshot:  toSnapshotInfo(loaded),
	}
	if s.refresher != nil {
		status := s.refresher.Status()
		if !status.LastAttempt.IsZero() {
			resp.LastAttempt = status.LastAttempt.Format(time.RFC3339)
		}
		resp.LastError = status.LastError
	}
	return resp, nil
}

func (s *diagnosticsService) SelfTest(ctx context.Context) (*dto.SelfTestResponse, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	report := calendar.Validate(loaded.Snapshot)

	resp := &dto.SelfTestResponse{
		Passed:   report.Passed(),
		Checks:   make([]dto.CheckResponse, 0, len(report.Checks)),
		Snapshot: toSnapshotInfo(loaded),
	}
	for _, c := range report.Checks {
		resp.Checks = append(resp.Checks, dto.CheckResponse{
			ID:      c.ID,
			Name:    c.Name,
			Passed:  c.Passed,
			Count:   c.Count,
			Message: c.Message(),
		})
	}
	if !resp.Passed {
		s.logger.Warn("快照自检未通过", zap.Strings("checks", report.Messages()))
	}
	return resp, nil
}

// Refresh 立即重新拉取快照；失败但有缓存回退时仍返回新快照信息
func (s *diagnosticsService) Refresh(ctx context.Context) (*dto.SnapshotInfo, error) {
	loaded, err := s.refresher.Refresh(ctx)
	if loaded != nil {
		info := toSnapshotInfo(loaded)
		return &info, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
}
