package calendar

import (
	"fmt"
	"regexp"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

var hhmmPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// CheckResult 单项自检结果
type CheckResult struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Count  int    `json:"count"` // 检查 1–3 为问题记录数，检查 4–5 为命中记录数
}

// Message 自检面板文案
func (c CheckResult) Message() string {
	var verdict string
	switch {
	case c.ID >= 4 && c.Passed:
		verdict = "OK (przynajmniej 1)"
	case c.ID >= 4:
		verdict = "BRAK"
	case c.Passed:
		verdict = "OK"
	default:
		verdict = fmt.Sprintf("BŁĘDY: %d", c.Count)
	}
	return fmt.Sprintf("Test %d — %s: %s", c.ID, c.Name, verdict)
}

// ValidationReport 快照自检报告
type ValidationReport struct {
	Checks []CheckResult `json:"checks"`
}

// Passed 全部检查是否通过
func (r ValidationReport) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Messages 按顺序输出每项检查的文案
func (r ValidationReport) Messages() []string {
	out := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		out = append(out, c.Message())
	}
	return out
}

// Validate 对快照做只读一致性检查，用于测试数据质量，不参与查询时的控制流
func Validate(s *model.Snapshot) ValidationReport {
	if s == nil {
		s = model.NewSnapshot(nil, nil, nil)
	}

	known := make(map[string]struct{}, len(s.Buildings))
	for _, b := range s.Buildings {
		known[b.ID] = struct{}{}
	}

	var missing, unknown, badTime, overcap, blocked int
	for _, b := range s.Bookings {
		if b.Date == "" || b.Start == "" || b.End == "" || b.Building == "" {
			missing++
		}
		if _, ok := known[b.Building]; !ok {
			unknown++
		}
		if !hhmmPattern.MatchString(b.Start) || !hhmmPattern.MatchString(b.End) {
			badTime++
		}
		if CapacityExceeded(s, b.Date, b.Start, b.End, b.Building) {
			overcap++
		}
		if IsBlackedOut(s, b.Date, b.Start, b.End, b.Building) {
			blocked++
		}
	}

	return ValidationReport{Checks: []CheckResult{
		{ID: 1, Name: "kompletność pól", Passed: missing == 0, Count: missing},
		{ID: 2, Name: "istnienie budynku", Passed: unknown == 0, Count: unknown},
		{ID: 3, Name: "format godzin", Passed: badTime == 0, Count: badTime},
		{ID: 4, Name: "wykrycie nad-limit", Passed: overcap > 0, Count: overcap},
		{ID: 5, Name: "wykrycie blokady", Passed: blocked > 0, Count: blocked},
	}}
}

// SnapshotStats 调试面板计数
type SnapshotStats struct {
	Buildings int `json:"buildings"`
	Blackouts int `json:"blackouts"`
	Bookings  int `json:"bookings"`
}

// Stats 快照各实体数量
func Stats(s *model.Snapshot) SnapshotStats {
	if s == nil {
		return SnapshotStats{}
	}
	return SnapshotStats{
		Buildings: len(s.Buildings),
		Blackouts: len(s.Blackouts),
		Bookings:  len(s.Bookings),
	}
}
