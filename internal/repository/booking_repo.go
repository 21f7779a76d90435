package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// BookingRepository 预订数据访问接口
type BookingRepository interface {
	List(ctx context.Context) ([]model.Booking, error)
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo 创建 BookingRepository 实例
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).Order("booking_id ASC").Find(&bookings).Error
	return bookings, err
}
