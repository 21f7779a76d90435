package calendar

import "github.com/mikolajradlinski-prog/stand-dashboard/internal/model"

// defaultCapacity 快照中找不到建筑时使用的容量
const defaultCapacity = 1

// IsBlackedOut 是否存在日期相同、建筑适用（ALL 或同 ID）且时段重叠的封锁窗口
//
// 检查全部窗口，而不是只看第一个匹配项。
func IsBlackedOut(s *model.Snapshot, date, start, end, buildingID string) bool {
	if s == nil {
		return false
	}
	for _, w := range s.Blackouts {
		if w.Date == date && w.AppliesTo(buildingID) && Overlaps(start, end, w.Start, w.End) {
			return true
		}
	}
	return false
}

// CapacityFor 建筑容量，未知建筑按 1 处理
func CapacityFor(s *model.Snapshot, buildingID string) int {
	if b, ok := s.FindBuilding(buildingID); ok {
		return b.Capacity
	}
	return defaultCapacity
}

// ConcurrentCount 同建筑、同日期且与 [start,end) 重叠的预订数（被检查的预订自身也计入）
func ConcurrentCount(s *model.Snapshot, date, start, end, buildingID string) int {
	if s == nil {
		return 0
	}
	count := 0
	for _, b := range s.Bookings {
		if b.Building == buildingID && b.Date == date && Overlaps(start, end, b.Start, b.End) {
			count++
		}
	}
	return count
}

// CapacityExceeded 查询时段内重叠预订数是否超过建筑容量
//
// 这是针对单个时段的计数，不是全天的最大并发扫描：两个互不重叠、
// 但都与第三个重叠的预订会各自判定为超限。
func CapacityExceeded(s *model.Snapshot, date, start, end, buildingID string) bool {
	return ConcurrentCount(s, date, start, end, buildingID) > CapacityFor(s, buildingID)
}
