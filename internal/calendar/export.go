package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// ExportHeader 月度导出表头，列顺序与下游兼容，不可调整
var ExportHeader = []string{"date", "start", "end", "building", "org", "title", "status"}

// MonthlyItems 锚定月份内每天的筛选后预订（带标注）
//
// 只遍历 InMonth 的格子；跨天按日期顺序，同一天内按开始时间。
func MonthlyItems(s *model.Snapshot, meta MonthMeta, buildingFilter string) []model.AnnotatedBooking {
	out := make([]model.AnnotatedBooking, 0)
	for _, cell := range meta.Days {
		if !cell.InMonth {
			continue
		}
		out = append(out, ItemsForDayFiltered(s, cell.ISO, buildingFilter)...)
	}
	return out
}

// ExportRow 单条预订的导出行，列顺序同 ExportHeader
func ExportRow(it model.AnnotatedBooking) []string {
	return []string{it.Date, it.Start, it.End, it.Building, it.Org, it.Title, it.Status}
}

// MonthlyExport 月度导出行，首行为表头
func MonthlyExport(s *model.Snapshot, meta MonthMeta, buildingFilter string) [][]string {
	rows := [][]string{append([]string(nil), ExportHeader...)}
	for _, it := range MonthlyItems(s, meta, buildingFilter) {
		rows = append(rows, ExportRow(it))
	}
	return rows
}

// EncodeCSV 所有字段加双引号，内部双引号加倍，行以 \n 连接
func EncodeCSV(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}

// ExportBaseName rejestr_miesiac_<年>_<月>[_<建筑>]，月份从 1 开始
func ExportBaseName(year int, month time.Month, buildingFilter string) string {
	name := fmt.Sprintf("rejestr_miesiac_%d_%d", year, int(month))
	if buildingFilter != "" && buildingFilter != model.AllBuildings {
		name += "_" + buildingFilter
	}
	return name
}

// ExportFilename CSV 导出文件名
func ExportFilename(year int, month time.Month, buildingFilter string) string {
	return ExportBaseName(year, month, buildingFilter) + ".csv"
}
