package service

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
	apperrors "github.com/mikolajradlinski-prog/stand-dashboard/pkg/errors"
)

// ── 测试辅助 ──

func setupTestExportService(s *model.Snapshot) ExportService {
	svc := NewExportService(newMockSource(s), warsaw, zap.NewNop())
	svc.(*exportService).clock.now = fixedNow
	return svc
}

// ── CSV ──

func TestExportService_MonthCSV(t *testing.T) {
	svc := setupTestExportService(demoSnapshot())
	file, err := svc.MonthCSV(context.Background(), &dto.CalendarQuery{Anchor: "2025-10-05"})
	if err != nil {
		t.Fatal(err)
	}

	if file.Filename != "rejestr_miesiac_2025_10.csv" {
		t.Errorf("文件名错误: %s", file.Filename)
	}
	if file.ContentType != ContentTypeCSV {
		t.Errorf("Content-Type 错误: %s", file.ContentType)
	}
	if file.Rows != 8 {
		t.Errorf("期望 8 行数据，实际 %d", file.Rows)
	}

	lines := strings.Split(string(file.Data), "\n")
	if lines[0] != `"date","start","end","building","org","title","status"` {
		t.Errorf("表头错误: %s", lines[0])
	}
	if lines[1] != `"2025-10-20","08:00","09:00","Z","Koło G","Kawa","Zgłoszone"` {
		t.Errorf("首行应为 10/20 最早的预订，实际 %s", lines[1])
	}
	if strings.HasSuffix(string(file.Data), "\n") {
		t.Error("末尾不应有换行")
	}
}

func TestExportService_MonthCSV_FilterAndEmpty(t *testing.T) {
	svc := setupTestExportService(demoSnapshot())

	file, err := svc.MonthCSV(context.Background(), &dto.CalendarQuery{Anchor: "2025-10-05", Building: "J"})
	if err != nil {
		t.Fatal(err)
	}
	if file.Filename != "rejestr_miesiac_2025_10_J.csv" || file.Rows != 4 {
		t.Errorf("J 筛选错误: %s rows=%d", file.Filename, file.Rows)
	}

	empty, err := svc.MonthCSV(context.Background(), &dto.CalendarQuery{Anchor: "2025-11-10"})
	if err != nil {
		t.Fatal(err)
	}
	if empty.Rows != 0 || strings.Contains(string(empty.Data), "\n") {
		t.Errorf("11 月应只有表头: %q", empty.Data)
	}
}

func TestExportService_NoSnapshot(t *testing.T) {
	svc := setupTestExportService(nil)
	if _, err := svc.MonthCSV(context.Background(), &dto.CalendarQuery{}); !errors.Is(err, apperrors.ErrSnapshotUnavailable) {
		t.Errorf("期望 ErrSnapshotUnavailable，实际 %v", err)
	}
	if _, err := svc.MonthXLSX(context.Background(), &dto.CalendarQuery{}); !errors.Is(err, apperrors.ErrSnapshotUnavailable) {
		t.Errorf("期望 ErrSnapshotUnavailable，实际 %v", err)
	}
}

// ── XLSX ──

func TestExportService_MonthXLSX(t *testing.T) {
	svc := setupTestExportService(demoSnapshot())
	file, err := svc.MonthXLSX(context.Background(), &dto.CalendarQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if file.Filename != "rejestr_miesiac_2025_10.xlsx" || file.ContentType != ContentTypeXLSX {
		t.Errorf("文件元信息错误: %s %s", file.Filename, file.ContentType)
	}

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("无法解析生成的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("读取工作表 %s 失败: %v", exportSheet, err)
	}
	if len(rows) != 9 {
		t.Fatalf("期望 1 行表头 + 8 行数据，实际 %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "date,start,end,building,org,title,status" {
		t.Errorf("表头错误: %v", rows[0])
	}

	// 与 CSV 同序
	csv, _ := svc.MonthCSV(context.Background(), &dto.CalendarQuery{})
	csvLines := strings.Split(string(csv.Data), "\n")
	for i := 1; i < len(rows); i++ {
		want := `"` + strings.Join(rows[i], `","`) + `"`
		if csvLines[i] != want {
			t.Errorf("第 %d 行与 CSV 不一致: %s vs %s", i, want, csvLines[i])
		}
	}

	// 10/22 Z 预订为 blocked，10/20 J 预订为 overcap，两者样式不同
	styleOf := func(row int) int {
		id, err := f.GetCellStyle(exportSheet, "A"+strconv.Itoa(row))
		if err != nil {
			t.Fatal(err)
		}
		return id
	}
	var blockedRow, overcapRow, normalRow int
	for i, r := range rows[1:] {
		switch {
		case r[0] == "2025-10-22":
			blockedRow = i + 2
		case r[0] == "2025-10-20" && r[3] == "J" && overcapRow == 0:
			overcapRow = i + 2
		case r[0] == "2025-10-23":
			normalRow = i + 2
		}
	}
	if styleOf(blockedRow) == styleOf(normalRow) || styleOf(overcapRow) == styleOf(normalRow) || styleOf(blockedRow) == styleOf(overcapRow) {
		t.Errorf("blocked/overcap/normal 行样式应互不相同: %d %d %d", styleOf(blockedRow), styleOf(overcapRow), styleOf(normalRow))
	}

	for col, want := range map[string]float64{"A": 12, "C": 9, "F": 28, "G": 16} {
		if got, err := f.GetColWidth(exportSheet, col); err != nil || got != want {
			t.Errorf("列 %s 宽度期望 %v，实际 %v (%v)", col, want, got, err)
		}
	}
}

// ── ICS ──

func TestExportService_MonthICS(t *testing.T) {
	snap := demoSnapshot()
	snap.Bookings = append(snap.Bookings,
		model.Booking{ID: 9, Date: "2025-10-21", Start: "12:00", End: "12:00", Building: "Z", Org: "Koło H", Title: "Pusty", Status: "Zgłoszone"},
		model.Booking{ID: 10, Date: "2025-10-21", Start: "14:00", End: "13:00", Building: "Z", Org: "Koło H", Title: "Odwrócony", Status: "Zgłoszone"},
	)
	svc := setupTestExportService(snap)

	file, err := svc.MonthICS(context.Background(), &dto.CalendarQuery{Anchor: "2025-10-05", Building: "Z"})
	if err != nil {
		t.Fatal(err)
	}
	if file.Filename != "rejestr_miesiac_2025_10_Z.ics" || file.ContentType != ContentTypeICS {
		t.Errorf("文件元信息错误: %s %s", file.Filename, file.ContentType)
	}
	if file.Rows != 2 {
		t.Errorf("无效时段应跳过，期望 2 个事件，实际 %d", file.Rows)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("无法解析生成的 ics: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个 VEVENT，实际 %d", len(events))
	}

	tests := []struct {
		id       string
		start    time.Time
		end      time.Time
		summary  string
		category string
	}{
		{"booking-8-2025-10-20@stand-dashboard", time.Date(2025, 10, 20, 8, 0, 0, 0, warsaw), time.Date(2025, 10, 20, 9, 0, 0, 0, warsaw), "Koło G: Kawa", "normal"},
		{"booking-4-2025-10-22@stand-dashboard", time.Date(2025, 10, 22, 9, 30, 0, 0, warsaw), time.Date(2025, 10, 22, 11, 0, 0, 0, warsaw), "Koło B: Promo", "blocked"},
	}
	for i, tt := range tests {
		evt := events[i]
		if evt.Id() != tt.id {
			t.Errorf("事件 %d UID 期望 %s，实际 %s", i, tt.id, evt.Id())
		}
		start, err := evt.GetStartAt()
		if err != nil || !start.Equal(tt.start) {
			t.Errorf("事件 %d DTSTART 期望 %v，实际 %v (%v)", i, tt.start, start, err)
		}
		end, err := evt.GetEndAt()
		if err != nil || !end.Equal(tt.end) {
			t.Errorf("事件 %d DTEND 期望 %v，实际 %v (%v)", i, tt.end, end, err)
		}
		if p := evt.GetProperty(ics.ComponentPropertySummary); p == nil || p.Value != tt.summary {
			t.Errorf("事件 %d SUMMARY 错误: %+v", i, p)
		}
		if p := evt.GetProperty(ics.ComponentPropertyLocation); p == nil || p.Value != "Budynek Z" {
			t.Errorf("事件 %d LOCATION 错误: %+v", i, p)
		}
		if p := evt.GetProperty(ics.ComponentPropertyCategories); p == nil || p.Value != tt.category {
			t.Errorf("事件 %d CATEGORIES 错误: %+v", i, p)
		}
	}
}

func TestExportService_MonthICS_NoSnapshot(t *testing.T) {
	svc := setupTestExportService(nil)
	if _, err := svc.MonthICS(context.Background(), &dto.CalendarQuery{}); !errors.Is(err, apperrors.ErrSnapshotUnavailable) {
		t.Errorf("期望 ErrSnapshotUnavailable，实际 %v", err)
	}
}
