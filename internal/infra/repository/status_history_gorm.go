package repository

import (
	"context"

	"cartservice/internal/domain/model"

	"gorm.io/gorm"
)

type StatusHistoryGormRepository struct {
	db *gorm.DB
}

func NewStatusHistoryGormRepository(db *gorm.DB) *StatusHistoryGormRepository {
	return &StatusHistoryGormRepository{db: db}
}

func (r *StatusHistoryGormRepository) Create(ctx context.Context, h *model.StatusHistory) error {
	return translate(r.db.WithContext(ctx).Create(h).Error)
}

// 新しい順（同時刻はid順で固定）
func (r *StatusHistoryGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.StatusHistory, error) {
	items := []model.StatusHistory{}
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.StatusHistory{}, err
	}
	return items, nil
}

func (r *StatusHistoryGormRepository) DeleteByOrderID(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.StatusHistory{}).Error
}
