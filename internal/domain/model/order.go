package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusSent      OrderStatus = "SENT"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusOpen:      {},
	OrderStatusApproved:  {},
	OrderStatusConfirmed: {},
	OrderStatusSent:      {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// 遷移の制約はなし。既知の値かだけ見る
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

type Order struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"type:uuid;not null;index" json:"userId"`
	CartID    string          `gorm:"type:uuid;not null" json:"cartId"`
	Payment   map[string]any  `gorm:"type:jsonb;serializer:json" json:"payment"`
	Delivery  map[string]any  `gorm:"type:jsonb;serializer:json" json:"delivery"`
	Comments  string          `gorm:"type:text" json:"comments"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
