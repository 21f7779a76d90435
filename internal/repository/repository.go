package repository

import "gorm.io/gorm"

// Repository 快照镜像表的聚合入口
type Repository struct {
	Building BuildingRepository
	Blackout BlackoutRepository
	Booking  BookingRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Building: NewBuildingRepo(db),
		Blackout: NewBlackoutRepo(db),
		Booking:  NewBookingRepo(db),
	}
}
