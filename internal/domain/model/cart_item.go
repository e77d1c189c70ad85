package model

// カートの明細。(cart_id, product_id)で一意、countは常に1以上
type CartItem struct {
	CartID    string `gorm:"type:uuid;primaryKey" json:"cartId"`
	ProductID string `gorm:"type:uuid;primaryKey" json:"productId"`
	Count     int    `gorm:"not null" json:"count"`
}
