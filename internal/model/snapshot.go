package model

import "encoding/json"

// Snapshot 领域快照：一次渲染/查询周期内不可变，刷新时整体替换
type Snapshot struct {
	Buildings []Building       `json:"buildings"`
	Blackouts []BlackoutWindow `json:"blackouts"`
	Bookings  []Booking        `json:"bookings"`
}

// DecodeSnapshot 解析快照 JSON；缺失的顶层数组按空序列处理
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	s.normalize()
	return &s, nil
}

// normalize 将 nil 切片替换为空切片，保证 JSON 输出为 [] 而不是 null
func (s *Snapshot) normalize() {
	if s.Buildings == nil {
		s.Buildings = []Building{}
	}
	if s.Blackouts == nil {
		s.Blackouts = []BlackoutWindow{}
	}
	if s.Bookings == nil {
		s.Bookings = []Booking{}
	}
}

// NewSnapshot 由三组实体构造快照（nil 视为空）
func NewSnapshot(buildings []Building, blackouts []BlackoutWindow, bookings []Booking) *Snapshot {
	s := &Snapshot{Buildings: buildings, Blackouts: blackouts, Bookings: bookings}
	s.normalize()
	return s
}

// FindBuilding 按 ID 查找建筑
func (s *Snapshot) FindBuilding(id string) (Building, bool) {
	if s == nil {
		return Building{}, false
	}
	for _, b := range s.Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return Building{}, false
}
