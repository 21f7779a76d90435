package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// WorkWeekDays 周视图天数（周一至周五）
	WorkWeekDays = 5
	// MonthGridCells 月视图格子数（6 行 × 7 列）
	MonthGridCells = 42
)

// GridCell 月视图单元格
type GridCell struct {
	Date    time.Time
	ISO     string
	InMonth bool // 是否属于锚定月份；不属于的由调用方淡化显示
}

// MonthMeta 月视图元数据
type MonthMeta struct {
	Year  int
	Month time.Month
	First time.Time
	Last  time.Time
	Days  []GridCell
}

// ToISODate 按值自身所在时区的日历字段格式化为 YYYY-MM-DD
//
// 不经过 UTC 转换，避免本地午夜附近日期偏移。
func ToISODate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseISODate 以本地时区解析 YYYY-MM-DD 为当天 00:00
func ParseISODate(s string) time.Time {
	return ParseISODateIn(s, time.Local)
}

// ParseISODateIn 以指定时区解析 YYYY-MM-DD
//
// 各分量独立兜底：年 1970、月 1、日 1。
func ParseISODateIn(s string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(strings.TrimSpace(s), "-")
	component := func(i, fallback int) int {
		if i >= len(parts) {
			return fallback
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil || n == 0 {
			return fallback
		}
		return n
	}
	y := component(0, 1970)
	m := component(1, 1)
	d := component(2, 1)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
}

// StartOfWeek 返回所在 ISO 周的周一 00:00
//
// 偏移量 (weekday + 6) % 7，周日为 0：周一偏移 0，周日偏移 6。
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekGrid 锚定日期所在周的周一至周五
func WeekGrid(anchor time.Time) []time.Time {
	start := StartOfWeek(anchor)
	y, m, d := start.Date()
	days := make([]time.Time, 0, WorkWeekDays)
	for i := 0; i < WorkWeekDays; i++ {
		days = append(days, time.Date(y, m, d+i, 0, 0, 0, 0, start.Location()))
	}
	return days
}

// MonthGrid 构建 42 格月视图，从该月 1 日所在周的周一开始逐日递增
func MonthGrid(anchor time.Time) MonthMeta {
	y, m, _ := anchor.Date()
	loc := anchor.Location()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc)

	gridStart := StartOfWeek(first)
	gy, gm, gd := gridStart.Date()

	cells := make([]GridCell, 0, MonthGridCells)
	for i := 0; i < MonthGridCells; i++ {
		d := time.Date(gy, gm, gd+i, 0, 0, 0, 0, loc)
		cells = append(cells, GridCell{
			Date:    d,
			ISO:     ToISODate(d),
			InMonth: d.Month() == m && d.Year() == y,
		})
	}

	return MonthMeta{Year: y, Month: m, First: first, Last: last, Days: cells}
}
