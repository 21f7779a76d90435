package calendar

import (
	"fmt"
	"time"
)

// View 日历视图类型
type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// ParseView 解析视图名，未知值回退为月视图
func ParseView(s string) View {
	if View(s) == ViewWeek {
		return ViewWeek
	}
	return ViewMonth
}

// Navigate 按视图前后翻页：周视图 ±7 天，月视图 ±1 月
//
// 月份溢出按日历归一化（1 月 31 日 +1 月 → 3 月初）。
func Navigate(anchor time.Time, view View, delta int) time.Time {
	if view == ViewWeek {
		return anchor.AddDate(0, 0, 7*delta)
	}
	return anchor.AddDate(0, delta, 0)
}

// ── 波兰语标签 ──

var monthNamesPL = [...]string{
	"styczeń", "luty", "marzec", "kwiecień", "maj", "czerwiec",
	"lipiec", "sierpień", "wrzesień", "październik", "listopad", "grudzień",
}

// WeekdaysShortPL 月视图表头（周一开始）
var WeekdaysShortPL = []string{"Pn", "Wt", "Śr", "Cz", "Pt", "So", "Nd"}

// MonthNamePL 月份的波兰语名称
func MonthNamePL(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNamesPL[m-1]
}

// FormatDayPL dd.mm
func FormatDayPL(t time.Time) string {
	return fmt.Sprintf("%02d.%02d", t.Day(), int(t.Month()))
}

// WeekTitle 周视图标题：dd.mm – dd.mm
func WeekTitle(days []time.Time) string {
	if len(days) == 0 {
		return ""
	}
	return FormatDayPL(days[0]) + " – " + FormatDayPL(days[len(days)-1])
}

// MonthTitle 月视图标题：<月份名> <年>
func MonthTitle(meta MonthMeta) string {
	return fmt.Sprintf("%s %d", MonthNamePL(meta.Month), meta.Year)
}
