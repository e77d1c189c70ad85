package usecase

import (
	"context"

	"cartservice/internal/domain/model"
)

// 商品情報の取得先（見つからなければrepository.ErrNotFoundをwrapして返す）
type ProductCatalog interface {
	Product(ctx context.Context, id string) (model.Product, error)
	Remember(ctx context.Context, p model.Product) error
}
