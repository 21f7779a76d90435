package model

// AllBuildings 通配建筑标识：用于封锁窗口（对所有建筑生效）和建筑筛选（不过滤）
const AllBuildings = "ALL"

// Building 建筑（场地），对应 buildings
type Building struct {
	ID       string `gorm:"column:building_id;type:varchar(32);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Capacity int    `gorm:"type:integer;not null;default:1"                json:"capacity"` // 同一时刻允许的最大预订数
}

// TableName 指定表名
func (Building) TableName() string { return "buildings" }
