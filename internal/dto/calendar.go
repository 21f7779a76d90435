package dto

import "github.com/mikolajradlinski-prog/stand-dashboard/internal/model"

// ── 日历模块 DTO ──

// CalendarQuery 日历查询参数
// Anchor 为空时取当天；Building 为空时等同于 ALL
type CalendarQuery struct {
	Anchor   string `form:"anchor"   binding:"omitempty,datetime=2006-01-02"`
	Building string `form:"building" binding:"omitempty,max=32"`
}

// GetBuilding 返回建筑筛选值（默认 ALL）
func (q *CalendarQuery) GetBuilding() string {
	if q.Building == "" {
		return model.AllBuildings
	}
	return q.Building
}

// DayQuery 单日明细查询参数（日期取自路径）
type DayQuery struct {
	Building string `form:"building" binding:"omitempty,max=32"`
}

// GetBuilding 返回建筑筛选值（默认 ALL）
func (q *DayQuery) GetBuilding() string {
	if q.Building == "" {
		return model.AllBuildings
	}
	return q.Building
}

// NavigateQuery 视图翻页参数
type NavigateQuery struct {
	Anchor string `form:"anchor" binding:"omitempty,datetime=2006-01-02"`
	View   string `form:"view"   binding:"omitempty,oneof=week month"`
	Delta  int    `form:"delta"  binding:"min=-120,max=120"`
}

// SnapshotInfo 当前快照元信息
type SnapshotInfo struct {
	Version   string `json:"version"`
	Source    string `json:"source"`
	FetchedAt string `json:"fetched_at"`
	Stale     bool   `json:"stale"`
}

// BuildingResponse 建筑信息
type BuildingResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// BuildingListResponse 建筑列表
type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
	Snapshot  SnapshotInfo       `json:"snapshot"`
}

// BookingItem 带标注的预订
type BookingItem struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Building string `json:"building"`
	Org      string `json:"org"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Blocked  bool   `json:"blocked"`
	Overcap  bool   `json:"overcap"`
	Tone     string `json:"tone"` // blocked > overcap > normal
}

// BlackoutResponse 封锁窗口
type BlackoutResponse struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Building string `json:"building"`
	Reason   string `json:"reason"`
}

// ── 周视图 ──

// WeekBuildingColumn 周视图中某天某建筑的一列
type WeekBuildingColumn struct {
	Building  BuildingResponse   `json:"building"`
	Items     []BookingItem      `json:"items"`
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// WeekDay 周视图中的一天
type WeekDay struct {
	Date      string               `json:"date"`
	Label     string               `json:"label"` // dd.mm
	Weekday   string               `json:"weekday"`
	Today     bool                 `json:"today"`
	Buildings []WeekBuildingColumn `json:"buildings"`
}

// WeekResponse 周视图
type WeekResponse struct {
	Title    string       `json:"title"`
	Anchor   string       `json:"anchor"`
	Building string       `json:"building"`
	Days     []WeekDay    `json:"days"`
	Snapshot SnapshotInfo `json:"snapshot"`
}

// ── 月视图 ──

// MonthCell 月视图格子
type MonthCell struct {
	Date        string        `json:"date"`
	Day         int           `json:"day"`
	InMonth     bool          `json:"in_month"`
	Today       bool          `json:"today"`
	HasBlackout bool          `json:"has_blackout"`
	Total       int           `json:"total"`
	Preview     []BookingItem `json:"preview"`
	More        int           `json:"more"`
}

// MonthResponse 月视图
type MonthResponse struct {
	Title         string       `json:"title"`
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	Building      string       `json:"building"`
	WeekdayLabels []string     `json:"weekday_labels"`
	Cells         []MonthCell  `json:"cells"`
	Snapshot      SnapshotInfo `json:"snapshot"`
}

// ── 单日明细 ──

// BuildingGroup 单日明细中按建筑分组的预订
type BuildingGroup struct {
	Building string        `json:"building"`
	Name     string        `json:"name"`
	Items    []BookingItem `json:"items"`
}

// DayDetailResponse 单日明细
type DayDetailResponse struct {
	Date        string             `json:"date"`
	Building    string             `json:"building"`
	HasBlackout bool               `json:"has_blackout"`
	Blackouts   []BlackoutResponse `json:"blackouts"`
	Groups      []BuildingGroup    `json:"groups"`
	Snapshot    SnapshotInfo       `json:"snapshot"`
}

// NavigateResponse 翻页结果
type NavigateResponse struct {
	View   string `json:"view"`
	Anchor string `json:"anchor"`
	Title  string `json:"title"`
}

// ── 诊断 ──

// SnapshotStatsResponse 快照计数（调试面板）
type SnapshotStatsResponse struct {
	Buildings   int          `json:"buildings"`
	Blackouts   int          `json:"blackouts"`
	Bookings    int          `json:"bookings"`
	LastAttempt string       `json:"last_attempt,omitempty"`
	LastError   string       `json:"last_error,omitempty"`
	Snapshot    SnapshotInfo `json:"snapshot"`
}

// CheckResponse 单项自检
type CheckResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// SelfTestResponse 自检报告
type SelfTestResponse struct {
	Passed   bool            `json:"passed"`
	Checks   []CheckResponse `json:"checks"`
	Snapshot SnapshotInfo    `json:"snapshot"`
}
