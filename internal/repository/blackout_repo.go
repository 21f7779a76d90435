package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// BlackoutRepository 封锁窗口数据访问接口
type BlackoutRepository interface {
	List(ctx context.Context) ([]model.BlackoutWindow, error)
}

type blackoutRepo struct {
	db *gorm.DB
}

// NewBlackoutRepo 创建 BlackoutRepository 实例
func NewBlackoutRepo(db *gorm.DB) BlackoutRepository {
	return &blackoutRepo{db: db}
}

// List 按插入顺序返回全部封锁窗口
func (r *blackoutRepo) List(ctx context.Context) ([]model.BlackoutWindow, error) {
	var windows []model.BlackoutWindow
	err := r.db.WithContext(ctx).Order("blackout_id ASC").Find(&windows).Error
	return windows, err
}
