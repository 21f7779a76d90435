package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/calendar"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/snapshot"
)

// ── 日历模块业务错误 ──

var (
	ErrInvalidDate = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// monthPreviewLimit 月视图单元格最多展示的预订数
const monthPreviewLimit = 4

// CalendarService 日历视图业务接口
type CalendarService interface {
	Buildings(ctx context.Context) (*dto.BuildingListResponse, error)
	Week(ctx context.Context, q *dto.CalendarQuery) (*dto.WeekResponse, error)
	Month(ctx context.Context, q *dto.CalendarQuery) (*dto.MonthResponse, error)
	Day(ctx context.Context, date string, q *dto.DayQuery) (*dto.DayDetailResponse, error)
	Navigate(ctx context.Context, q *dto.NavigateQuery) (*dto.NavigateResponse, error)
}

// dayKey 单日查询缓存键；快照版本变化后旧键自然失效
type dayKey struct {
	version string
	date    string
	filter  string
}

type calendarService struct {
	source SnapshotSource
	clock  clock
	memo   *lru.Cache[dayKey, []model.AnnotatedBooking] // nil 表示关闭
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例；memoSize 为 0 时不缓存
func NewCalendarService(source SnapshotSource, loc *time.Location, memoSize int, logger *zap.Logger) (CalendarService, error) {
	s := &calendarService{
		source: source,
		clock:  clock{loc: loc, now: time.Now},
		logger: logger,
	}
	if memoSize > 0 {
		memo, err := lru.New[dayKey, []model.AnnotatedBooking](memoSize)
		if err != nil {
			return nil, fmt.Errorf("创建查询缓存失败: %w", err)
		}
		s.memo = memo
	}
	return s, nil
}

// ────────────────────── Buildings ──────────────────────

func (s *calendarService) Buildings(ctx context.Context) (*dto.BuildingListResponse, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}

	list := make([]dto.BuildingResponse, 0, len(loaded.Snapshot.Buildings))
	for _, b := range loaded.Snapshot.Buildings {
		list = append(list, toBuildingResponse(b))
	}
	return &dto.BuildingListResponse{Buildings: list, Snapshot: toSnapshotInfo(loaded)}, nil
}

// ────────────────────── Week ──────────────────────

func (s *calendarService) Week(ctx context.Context, q *dto.CalendarQuery) (*dto.WeekResponse, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	snap := loaded.Snapshot
	filter := q.GetBuilding()
	anchor := s.clock.anchor(q.Anchor)
	today := calendar.ToISODate(s.clock.today())

	days := calendar.WeekGrid(anchor)
	visible := calendar.VisibleBuildings(snap, filter)

	resp := &dto.WeekResponse{
		Title:    calendar.WeekTitle(days),
		Anchor:   calendar.ToISODate(anchor),
		Building: filter,
		Days:     make([]dto.WeekDay, 0, len(days)),
		Snapshot: toSnapshotInfo(loaded),
	}

	for i, d := range days {
		iso := calendar.ToISODate(d)
		groups := calendar.GroupByBuilding(s.items(loaded, iso, filter))

		day := dto.WeekDay{
			Date:      iso,
			Label:     calendar.FormatDayPL(d),
			Weekday:   calendar.WeekdaysShortPL[i],
			Today:     iso == today,
			Buildings: make([]dto.WeekBuildingColumn, 0, len(visible)),
		}
		for _, b := range visible {
			day.Buildings = append(day.Buildings, dto.WeekBuildingColumn{
				Building:  toBuildingResponse(b),
				Items:     toBookingItems(groups[b.ID]),
				Blackouts: toBlackoutResponses(calendar.BlackoutsFor(snap, iso, b.ID)),
			})
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

// ────────────────────── Month ──────────────────────

func (s *calendarService) Month(ctx context.Context, q *dto.CalendarQuery) (*dto.MonthResponse, error) {
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	filter := q.GetBuilding()
	meta := calendar.MonthGrid(s.clock.anchor(q.Anchor))
	today := calendar.ToISODate(s.clock.today())

	resp := &dto.MonthResponse{
		Title:         calendar.MonthTitle(meta),
		Year:          meta.Year,
		Month:         int(meta.Month),
		Building:      filter,
		WeekdayLabels: calendar.WeekdaysShortPL,
		Cells:         make([]dto.MonthCell, 0, len(meta.Days)),
		Snapshot:      toSnapshotInfo(loaded),
	}

	for _, cell := range meta.Days {
		items := s.items(loaded, cell.ISO, filter)
		preview := items
		if len(preview) > monthPreviewLimit {
			preview = preview[:monthPreviewLimit]
		}
		resp.Cells = append(resp.Cells, dto.MonthCell{
			Date:        cell.ISO,
			Day:         cell.Date.Day(),
			InMonth:     cell.InMonth,
			Today:       cell.ISO == today,
			HasBlackout: calendar.DayHasBlackout(loaded.Snapshot, cell.ISO, filter),
			Total:       len(items),
			Preview:     toBookingItems(preview),
			More:        len(items) - len(preview),
		})
	}

	return resp, nil
}

// ────────────────────── Day ──────────────────────

func (s *calendarService) Day(ctx context.Context, date string, q *dto.DayQuery) (*dto.DayDetailResponse, error) {
	if _, err := time.ParseInLocation("2006-01-02", date, s.clock.loc); err != nil {
		return nil, ErrInvalidDate
	}
	loaded, err := currentSnapshot(s.source)
	if err != nil {
		return nil, err
	}
	snap := loaded.Snapshot
	filter := q.GetBuilding()

	groups := calendar.GroupByBuilding(s.items(loaded, date, filter))
	resp := &dto.DayDetailResponse{
		Date:        date,
		Building:    filter,
		HasBlackout: calendar.DayHasBlackout(snap, date, filter),
		Blackouts:   toBlackoutResponses(dayBlackouts(snap, date, filter)),
		Groups:      make([]dto.BuildingGroup, 0, len(groups)),
		Snapshot:    toSnapshotInfo(loaded),
	}
	for _, id := range calendar.SortedBuildingIDs(groups) {
		g := dto.BuildingGroup{Building: id, Items: toBookingItems(groups[id])}
		if b, ok := snap.FindBuilding(id); ok {
			g.Name = b.Name
		}
		resp.Groups = append(resp.Groups, g)
	}

	return resp, nil
}

// dayBlackouts 单日明细中的封锁窗口：ALL 时列出当天全部窗口
func dayBlackouts(s *model.Snapshot, date, filter string) []model.BlackoutWindow {
	if filter != model.AllBuildings {
		return calendar.BlackoutsFor(s, date, filter)
	}
	out := make([]model.BlackoutWindow, 0)
	for _, w := range s.Blackouts {
		if w.Date == date {
			out = append(out, w)
		}
	}
	return out
}

// ────────────────────── Navigate ──────────────────────

func (s *calendarService) Navigate(ctx context.Context, q *dto.NavigateQuery) (*dto.NavigateResponse, error) {
	view := calendar.ParseView(q.View)
	target := calendar.Navigate(s.clock.anchor(q.Anchor), view, q.Delta)

	title := calendar.MonthTitle(calendar.MonthGrid(target))
	if view == calendar.ViewWeek {
		title = calendar.WeekTitle(calendar.WeekGrid(target))
	}
	return &dto.NavigateResponse{
		View:   string(view),
		Anchor: calendar.ToISODate(target),
		Title:  title,
	}, nil
}

// ── 内部辅助 ──

// items 单日带标注的预订；返回值可能被缓存共享，调用方不得修改
func (s *calendarService) items(loaded *snapshot.Loaded, iso, filter string) []model.AnnotatedBooking {
	if s.memo == nil {
		return calendar.ItemsForDayFiltered(loaded.Snapshot, iso, filter)
	}
	key := dayKey{version: loaded.Version, date: iso, filter: filter}
	if items, ok := s.memo.Get(key); ok {
		return items
	}
	items := calendar.ItemsForDayFiltered(loaded.Snapshot, iso, filter)
	s.memo.Add(key, items)
	return items
}

func toBuildingResponse(b model.Building) dto.BuildingResponse {
	return dto.BuildingResponse{ID: b.ID, Name: b.Name, Capacity: b.Capacity}
}

func toBookingItems(items []model.AnnotatedBooking) []dto.BookingItem {
	out := make([]dto.BookingItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.BookingItem{
			ID:       it.ID,
			Date:     it.Date,
			Start:    it.Start,
			End:      it.End,
			Building: it.Building,
			Org:      it.Org,
			Title:    it.Title,
			Status:   it.Status,
			Blocked:  it.Blocked,
			Overcap:  it.Overcap,
			Tone:     string(calendar.ToneOf(it)),
		})
	}
	return out
}

func toBlackoutResponses(windows []model.BlackoutWindow) []dto.BlackoutResponse {
	out := make([]dto.BlackoutResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, dto.BlackoutResponse{Start: w.Start, End: w.End, Building: w.Building, Reason: w.Reason})
	}
	return out
}
