package calendar

import (
	"strconv"
	"strings"
)

// TimeToMinutes 将 "HH:MM" 转换为当天的分钟数
//
// 空串或无法解析的小时返回 0；分钟缺失或非法时按 0 分钟处理。永不失败。
func TimeToMinutes(t string) int {
	t = strings.TrimSpace(t)
	if t == "" {
		return 0
	}
	hh, rest, _ := strings.Cut(t, ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0
	}
	mm, _, _ := strings.Cut(rest, ":")
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		m = 0
	}
	return h*60 + m
}

// OverlapsMinutes 半开区间 [aStart,aEnd) 与 [bStart,bEnd) 是否重叠（分钟）
// 任一区间零宽或倒置时不重叠
func OverlapsMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < aEnd && bStart < bEnd && aStart < bEnd && aEnd > bStart
}

// Overlaps 半开区间重叠判断（"HH:MM" 形式）
//
// 两侧均为严格比较：零宽或倒置的区间不与任何区间重叠。
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return OverlapsMinutes(
		TimeToMinutes(aStart), TimeToMinutes(aEnd),
		TimeToMinutes(bStart), TimeToMinutes(bEnd),
	)
}
