package model

// Booking 预订（摊位登记），对应 bookings
type Booking struct {
	ID       int    `gorm:"column:booking_id;primaryKey"                 json:"id"`
	Date     string `gorm:"type:varchar(10);not null;index"              json:"date"`  // YYYY-MM-DD
	Start    string `gorm:"column:start_time;type:varchar(5);not null"   json:"start"` // HH:MM
	End      string `gorm:"column:end_time;type:varchar(5);not null"     json:"end"`   // HH:MM
	Building string `gorm:"column:building_id;type:varchar(32);not null" json:"building"`
	Org      string `gorm:"type:varchar(200)"                            json:"org"`
	Title    string `gorm:"type:varchar(200)"                            json:"title"`
	Status   string `gorm:"type:varchar(50)"                             json:"status"` // 自由文本，如 Zgłoszone / Potwierdzone
}

// TableName 指定表名
func (Booking) TableName() string { return "bookings" }

// AnnotatedBooking 附带可用性标记的预订，每次查询时重新计算，不缓存也不持久化
type AnnotatedBooking struct {
	Booking
	Blocked bool `json:"blocked"` // 与适用的封锁窗口重叠
	Overcap bool `json:"overcap"` // 同建筑同时段预订数超过容量
}
