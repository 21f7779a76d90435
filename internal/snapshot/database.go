package snapshot

import (
	"context"
	"fmt"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/model"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/repository"
)

// DatabaseProvider 从 PostgreSQL 镜像表读取快照
type DatabaseProvider struct {
	repo *repository.Repository
}

// NewDatabaseProvider 创建数据库来源
func NewDatabaseProvider(repo *repository.Repository) *DatabaseProvider {
	return &DatabaseProvider{repo: repo}
}

func (p *DatabaseProvider) Name() string { return "database" }

func (p *DatabaseProvider) Fetch(ctx context.Context) (*model.Snapshot, error) {
	buildings, err := p.repo.Building.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询建筑失败: %w", err)
	}
	blackouts, err := p.repo.Blackout.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询封锁窗口失败: %w", err)
	}
	bookings, err := p.repo.Booking.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询预订失败: %w", err)
	}
	return model.NewSnapshot(buildings, blackouts, bookings), nil
}
