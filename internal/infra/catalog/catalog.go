// Package catalog resolves product data (title, description, price) for cart items.
// Products are not persisted by this service; they come from an external product
// service and are cached in redis, or are remembered from cart update payloads.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"cartservice/internal/domain/model"
	"cartservice/internal/repository"
)

// errors.Is(err, repository.ErrNotFound) でも判定できる
var ErrProductNotFound = fmt.Errorf("product %w", repository.ErrNotFound)

// 上流の商品ソース
type Source interface {
	Product(ctx context.Context, id string) (model.Product, error)
}

// usecaseから使う窓口
type Catalog interface {
	Source
	// リクエストで受け取った商品情報を覚えておく
	Remember(ctx context.Context, p model.Product) error
}

// 上流なし（PRODUCT_SERVICE_URL未設定）
type noSource struct{}

func NoSource() Source { return noSource{} }

func (noSource) Product(context.Context, string) (model.Product, error) {
	return model.Product{}, ErrProductNotFound
}

var errUnsupportedValue = errors.New("unsupported cache value")
