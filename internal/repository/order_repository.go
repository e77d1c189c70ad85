package repository

import (
	"context"
	"time"

	"cartservice/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	// FOR UPDATEで取得（Tx内で使う）
	LockByID(ctx context.Context, orderID string) (model.Order, error)
	// 新しい順
	List(ctx context.Context) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error
	// 0件削除はErrNotFound
	Delete(ctx context.Context, orderID string) error
}
