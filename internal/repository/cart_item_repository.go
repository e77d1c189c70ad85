package repository

import (
	"context"

	"cartservice/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	// 同一商品はcountを上書き
	Upsert(ctx context.Context, item model.CartItem) error
	// 無くてもエラーにしない
	Delete(ctx context.Context, cartID string, productID string) error
	DeleteByCartID(ctx context.Context, cartID string) error
}
