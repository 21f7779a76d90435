package service

import (
	"context"
	"errors"
	"time"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/snapshot"
)

// ── Mock SnapshotSource ──

type mockSource struct {
	loaded *snapshot.Loaded
}

func newMockSource(s *model.Snapshot) *mockSource {
	if s == nil {
		return &mockSource{}
	}
	return &mockSource{loaded: &snapshot.Loaded{
		Snapshot:  s,
		Version:   "v-test",
		FetchedAt: time.Date(2025, 10, 20, 7, 0, 0, 0, time.UTC),
		Source:    "mock",
	}}
}

func (m *mockSource) Current() *snapshot.Loaded { return m.loaded }

// ── Mock SnapshotRefresher ──

type mockRefresher struct {
	source *mockSource
	next   *model.Snapshot
	err    error
	status snapshot.Status
	calls  int
}

func (m *mockRefresher) Refresh(_ context.Context) (*snapshot.Loaded, error) {
	m.calls++
	var stale *snapshot.StaleError
	if m.err != nil && !errors.As(m.err, &stale) {
		m.status.LastError = m.err.Error()
		return nil, m.err
	}
	l := &snapshot.Loaded{
		Snapshot: m.next,
		Version:  "v-refreshed",
		Source:   "mock",
		Stale:    m.err != nil,
	}
	m.source.loaded = l
	return l, m.err
}

func (m *mockRefresher) Status() snapshot.Status { return m.status }

// ── 测试数据 ──

var warsaw = mustLoadLocation("Europe/Warsaw")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// fixedNow 固定的“现在”：华沙时间 2025-10-20 23:30（UTC 21:30）
func fixedNow() time.Time {
	return time.Date(2025, 10, 20, 21, 30, 0, 0, time.UTC)
}

// demoSnapshot 与内置演示数据相同，另加 10/20 的第 4、5 条 J 预订用于月视图截断
func demoSnapshot() *model.Snapshot {
	s := snapshot.MockSnapshot()
	s.Bookings = append(s.Bookings,
		model.Booking{ID: 7, Date: "2025-10-20", Start: "16:00", End: "17:00", Building: "E", Org: "Koło F", Title: "Quiz", Status: "Zgłoszone"},
		model.Booking{ID: 8, Date: "2025-10-20", Start: "08:00", End: "09:00", Building: "Z", Org: "Koło G", Title: "Kawa", Status: "Zgłoszone"},
	)
	return s
}
