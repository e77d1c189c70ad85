package repository

import (
	"context"

	"cartservice/internal/domain/model"
)

// 注文ステータス履歴（追記のみ）
type StatusHistoryRepository interface {
	Create(ctx context.Context, h *model.StatusHistory) error
	// timestamp降順
	ListByOrderID(ctx context.Context, orderID string) ([]model.StatusHistory, error)
	DeleteByOrderID(ctx context.Context, orderID string) error
}
