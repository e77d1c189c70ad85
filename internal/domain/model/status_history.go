package model

import "time"

// 注文ステータスの履歴（追記のみ）
type StatusHistory struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string      `gorm:"type:uuid;not null;index" json:"orderId"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Comment   string      `gorm:"type:text;not null;default:''" json:"comment"`
	Timestamp time.Time   `gorm:"not null" json:"timestamp"`
}

func (StatusHistory) TableName() string { return "status_history" }
