package model

import "github.com/shopspring/decimal"

// 価格はJSON数値で返す
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// 商品は永続化しない。カタログ（外部サービス/キャッシュ）から引く
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}
