package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/calendar"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/metrics"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeICS  = "text/calendar; charset=utf-8"

	exportSheet = "rejestr"
)

// ExportFile 导出结果
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int // 不含表头
}

// ExportService 月度登记表导出接口
//
// CSV 与 XLSX 使用同一组行；月份取锚定日期所在月，无预订时只含表头。
type ExportService interface {
	MonthCSV(ctx context.Context, q *dto.CalendarQuery) (*ExportFile, error)
	MonthXLSX(ctx context.Context, q *dto.CalendarQuery) (*ExportFile, error)
	MonthICS(ctx context.Context, q *dto.CalendarQuery) (*ExportFile, error)
}

type exportService struct {
	source SnapshotSource
	clock  clock
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(source SnapshotSource, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{
		source: source,
		clock:  clock{loc: loc, now: time.Now},
		logger: logger,
	}
}

// ────────────────────── CSV ──────────────────────

func (s *exportService) MonthCSV(ctx context.Context, q *dto.CalendarQuery) (*ExportFile, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	filter := q.GetBuilding()
	meta := calendar.MonthGrid(s.clock.anchor(q.Anchor))

	rows := calendar.MonthlyExport(loaded.Snapshot, meta, filter)
	metrics.RecordExport("csv", len(rows)-1)

	return &ExportFile{
		Filename:    calendar.ExportFilename(meta.Year, meta.Month, filter),
		ContentType: ContentTypeCSV,
		Data:        []byte(calendar.EncodeCSV(rows)),
		Rows:        len(rows) - 1,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// MonthXLSX 与 CSV 同列同序
// ═══════════════════════════════════════════════════════════
//
// 表头加粗，blocked 行灰底，overcap 行红底（与看板图例一致）。

func (s *exportService) MonthXLSX(ctx context.Context, q *dto.CalendarQuery) (*ExportFile, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	filter := q.GetBuilding()
	meta := calendar.MonthGrid(s.clock.anchor(q.Anchor))
	items := calendar.MonthlyItems(loaded.Snapshot, meta, filter)

	data, err := buildWorkbook(items)
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	metrics.RecordExport("xlsx", len(items))

	return &ExportFile{
		Filename:    calendar.ExportBaseName(meta.Year, meta.Month, filter) + ".xlsx",
		ContentType: ContentTypeXLSX,
		Data:        data,
		Rows:        len(items),
	}, nil
}

func buildWorkbook(items []model.AnnotatedBooking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#374151"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	blockedStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#6B7280"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	overcapStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#991B1B"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FEE2E2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(calendar.ExportHeader))

	// 表头
	if err := f.SetSheetRow(exportSheet, "A1", toCells(calendar.ExportHeader)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	// 数据行
	for i, it := range items {
		row := i + 2
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(calendar.ExportHeader), row)
		if err := f.SetSheetRow(exportSheet, start, toCells(calendar.ExportRow(it))); err != nil {
			return nil, err
		}

		switch calendar.ToneOf(it) {
		case calendar.ToneBlocked:
			err = f.SetCellStyle(exportSheet, start, end, blockedStyle)
		case calendar.ToneOvercap:
			err = f.SetCellStyle(exportSheet, start, end, overcapStyle)
		}
		if err != nil {
			return nil, err
		}
	}

	// 列宽：date/start/end/building 窄，org/title/status 宽
	for _, w := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 12},
		{"B", "D", 9},
		{"E", "F", 28},
		{"G", "G", 16},
	} {
		if err := f.SetColWidth(exportSheet, w.from, w.to, w.width); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toCells(values []string) *[]interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}

// ────────────────────── ICS ──────────────────────

// MonthICS 将月度登记导出为 iCalendar，每条预订一个 VEVENT
// 日期与时间按日历时区解释；零宽或倒置时段的预订不导出
func (s *exportService) MonthICS(ctx context.Context, q *dto.CalendarQuery) (*ExportFile, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	filter := q.GetBuilding()
	meta := calendar.MonthGrid(s.clock.anchor(q.Anchor))
	items := calendar.MonthlyItems(loaded.Snapshot, meta, filter)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//stand-dashboard//rejestr//PL")
	cal.SetXWRCalName(calendar.ExportBaseName(meta.Year, meta.Month, filter))
	cal.SetXWRTimezone(s.clock.loc.String())

	rows := 0
	for _, it := range items {
		start, end, ok := bookingSpan(it, s.clock.loc)
		if !ok {
			s.logger.Debug("跳过时段无效的预订", zap.Int("booking_id", it.ID))
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("booking-%d-%s@stand-dashboard", it.ID, it.Date))
		evt.SetDtStampTime(loaded.FetchedAt)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(eventSummary(it))
		evt.SetLocation(it.Building)
		if b, ok := loaded.Snapshot.FindBuilding(it.Building); ok {
			evt.SetLocation(b.Name)
		}
		evt.SetDescription(eventDescription(it))
		evt.SetProperty(ics.ComponentPropertyCategories, string(calendar.ToneOf(it)))
		rows++
	}
	metrics.RecordExport("ics", rows)

	return &ExportFile{
		Filename:    calendar.ExportBaseName(meta.Year, meta.Month, filter) + ".ics",
		ContentType: ContentTypeICS,
		Data:        []byte(cal.Serialize()),
		Rows:        rows,
	}, nil
}

// bookingSpan 预订在日历时区下的起止时刻
func bookingSpan(it model.AnnotatedBooking, loc *time.Location) (time.Time, time.Time, bool) {
	startMin, endMin := calendar.TimeToMinutes(it.Start), calendar.TimeToMinutes(it.End)
	if startMin >= endMin {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := calendar.ParseISODateIn(it.Date, loc).Date()
	start := time.Date(y, m, d, 0, startMin, 0, 0, loc)
	end := time.Date(y, m, d, 0, endMin, 0, 0, loc)
	return start, end, true
}

func eventSummary(it model.AnnotatedBooking) string {
	if it.Org == "" {
		return it.Title
	}
	return it.Org + ": " + it.Title
}

func eventDescription(it model.AnnotatedBooking) string {
	parts := []string{"Status: " + it.Status}
	if it.Blocked {
		parts = append(parts, "BLOKADA")
	}
	if it.Overcap {
		parts = append(parts, "NAD LIMIT")
	}
	return strings.Join(parts, "\n")
}
