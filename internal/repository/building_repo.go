package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
)

// BuildingRepository 建筑数据访问接口
type BuildingRepository interface {
	List(ctx context.Context) ([]model.Building, error)
}

type buildingRepo struct {
	db *gorm.DB
}

// NewBuildingRepo 创建 BuildingRepository 实例
func NewBuildingRepo(db *gorm.DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) List(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	err := r.db.WithContext(ctx).Order("building_id ASC").Find(&buildings).Error
	return buildings, err
}
