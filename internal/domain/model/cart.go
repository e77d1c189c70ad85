package model

import "time"

type CartStatus string

const (
	CartStatusOpen    CartStatus = "OPEN"
	CartStatusOrdered CartStatus = "ORDERED"
)

// 1ユーザーにつきOPENは1つ（carts_one_open_per_user）
type Cart struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"userId"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
}
