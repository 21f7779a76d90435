package snapshot

import (
	"context"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// MockSnapshot 内置演示数据：10/20 J 超容量，10/22 Z 封锁，10/01 全局封锁
// 每次调用返回新副本
func MockSnapshot() *model.Snapshot {
	return model.NewSnapshot(
		[]model.Building{
			{ID: "J", Name: "Budynek J", Capacity: 2},
			{ID: "Z", Name: "Budynek Z", Capacity: 1},
			{ID: "E", Name: "Budynek E", Capacity: 2},
		},
		[]model.BlackoutWindow{
			{Date: "2025-10-01", Start: "08:00", End: "20:00", Building: model.AllBuildings, Reason: "Inauguracja roku akademickiego"},
			{Date: "2025-10-22", Start: "09:00", End: "12:00", Building: "Z", Reason: "Wydarzenie w Z"},
		},
		[]model.Booking{
			{ID: 1, Date: "2025-10-20", Start: "10:00", End: "13:00", Building: "J", Org: "Koło Naukowe A", Title: "Rekrutacja", Status: "Zgłoszone"},
			{ID: 2, Date: "2025-10-20", Start: "11:00", End: "14:00", Building: "J", Org: "Samorząd", Title: "Info punkt", Status: "Zgłoszone"},
			{ID: 3, Date: "2025-10-20", Start: "12:00", End: "15:00", Building: "J", Org: "Organizacja C", Title: "Zbiórka", Status: "Potwierdzone"},
			{ID: 4, Date: "2025-10-22", Start: "09:30", End: "11:00", Building: "Z", Org: "Koło B", Title: "Promo", Status: "Zgłoszone"},
			{ID: 5, Date: "2025-10-23", Start: "10:00", End: "12:00", Building: "E", Org: "Koło D", Title: "Wystawka", Status: "Zgłoszone"},
			{ID: 6, Date: "2025-10-24", Start: "08:00", End: "10:00", Building: "J", Org: "Koło E", Title: "Ankiety", Status: "Zgłoszone"},
		},
	)
}

// MockProvider 返回内置演示数据
type MockProvider struct{}

// NewMockProvider 创建演示数据来源
func NewMockProvider() *MockProvider { return &MockProvider{} }

func (MockProvider) Name() string { return "mock" }

func (MockProvider) Fetch(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return MockSnapshot(), nil
}
