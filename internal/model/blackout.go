package model

// BlackoutWindow 封锁窗口，对应 blackout_windows
//
// 仅按日期精确匹配，不跨越午夜；Building 为 "ALL" 时对所有建筑生效。
type BlackoutWindow struct {
	WindowID int64  `gorm:"column:blackout_id;primaryKey;autoIncrement" json:"-"`
	Date     string `gorm:"type:varchar(10);not null;index"             json:"date"`  // YYYY-MM-DD
	Start    string `gorm:"column:start_time;type:varchar(5);not null"  json:"start"` // HH:MM
	End      string `gorm:"column:end_time;type:varchar(5);not null"    json:"end"`   // HH:MM
	Building string `gorm:"column:building_id;type:varchar(32);not null" json:"building"`
	Reason   string `gorm:"type:varchar(200)"                            json:"reason"`
}

// TableName 指定表名
func (BlackoutWindow) TableName() string { return "blackout_windows" }

// AppliesTo 窗口是否作用于指定建筑
func (w BlackoutWindow) AppliesTo(buildingID string) bool {
	return w.Building == AllBuildings || w.Building == buildingID
}
