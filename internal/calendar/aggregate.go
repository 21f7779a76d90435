package calendar

import (
	"sort"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// Tone 展示色调，优先级 blocked > overcap > normal
type Tone string

const (
	ToneNormal  Tone = "normal"
	ToneOvercap Tone = "overcap"
	ToneBlocked Tone = "blocked"
)

// ToneOf 预订的展示色调
func ToneOf(item model.AnnotatedBooking) Tone {
	switch {
	case item.Blocked:
		return ToneBlocked
	case item.Overcap:
		return ToneOvercap
	default:
		return ToneNormal
	}
}

// Annotate 以预订自身的日期、时段、建筑计算 blocked / overcap
func Annotate(s *model.Snapshot, b model.Booking) model.AnnotatedBooking {
	return model.AnnotatedBooking{
		Booking: b,
		Blocked: IsBlackedOut(s, b.Date, b.Start, b.End, b.Building),
		Overcap: CapacityExceeded(s, b.Date, b.Start, b.End, b.Building),
	}
}

// ItemsForDay 指定日期的全部预订，带标记并按开始时间稳定排序
func ItemsForDay(s *model.Snapshot, isoDate string) []model.AnnotatedBooking {
	return ItemsForDayFiltered(s, isoDate, model.AllBuildings)
}

// ItemsForDayFiltered 同 ItemsForDay，buildingFilter 不为 ALL 时只保留该建筑
func ItemsForDayFiltered(s *model.Snapshot, isoDate, buildingFilter string) []model.AnnotatedBooking {
	items := make([]model.AnnotatedBooking, 0)
	if s == nil {
		return items
	}
	for _, b := range s.Bookings {
		if b.Date != isoDate {
			continue
		}
		if buildingFilter != model.AllBuildings && b.Building != buildingFilter {
			continue
		}
		items = append(items, Annotate(s, b))
	}
	sortByStart(items)
	return items
}

// GroupByBuilding 按建筑分组，组内按开始时间排序
//
// map 键无序，展示时用 SortedBuildingIDs 取确定顺序。
func GroupByBuilding(items []model.AnnotatedBooking) map[string][]model.AnnotatedBooking {
	groups := make(map[string][]model.AnnotatedBooking)
	for _, it := range items {
		if _, ok := groups[it.Building]; !ok {
			groups[it.Building] = make([]model.AnnotatedBooking, 0, 1)
		}
		groups[it.Building] = append(groups[it.Building], it)
	}
	for _, list := range groups {
		sortByStart(list)
	}
	return groups
}

// SortedBuildingIDs 分组键的字典序
func SortedBuildingIDs(groups map[string][]model.AnnotatedBooking) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DayHasBlackout 当天在筛选条件下是否显示封锁标记
//
// 筛选为 ALL 时只认 ALL 范围的窗口，单建筑窗口不触发汇总标记。
func DayHasBlackout(s *model.Snapshot, isoDate, buildingFilter string) bool {
	if s == nil {
		return false
	}
	for _, w := range s.Blackouts {
		if w.Date != isoDate {
			continue
		}
		if buildingFilter == model.AllBuildings {
			if w.Building == model.AllBuildings {
				return true
			}
			continue
		}
		if w.AppliesTo(buildingFilter) {
			return true
		}
	}
	return false
}

// BlackoutsFor 当天作用于指定建筑的全部封锁窗口（保持快照顺序）
func BlackoutsFor(s *model.Snapshot, isoDate, buildingID string) []model.BlackoutWindow {
	out := make([]model.BlackoutWindow, 0)
	if s == nil {
		return out
	}
	for _, w := range s.Blackouts {
		if w.Date == isoDate && w.AppliesTo(buildingID) {
			out = append(out, w)
		}
	}
	return out
}

// VisibleBuildings 筛选后可见的建筑
func VisibleBuildings(s *model.Snapshot, buildingFilter string) []model.Building {
	out := make([]model.Building, 0)
	if s == nil {
		return out
	}
	for _, b := range s.Buildings {
		if buildingFilter == model.AllBuildings || b.ID == buildingFilter {
			out = append(out, b)
		}
	}
	return out
}

func sortByStart(items []model.AnnotatedBooking) {
	sort.SliceStable(items, func(i, j int) bool {
		return TimeToMinutes(items[i].Start) < TimeToMinutes(items[j].Start)
	})
}
