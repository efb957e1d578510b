package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Name         string `gorm:"not null"                 json:"name"`
	IsAdmin      bool   `gorm:"not null;default:false"   json:"is_admin"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	ImageURL    string  `json:"image_url"`
}

// CartItem holds one (user, product) pair. The composite unique index keeps
// concurrent add-to-cart requests on the same row instead of inserting twins.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"              json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"product_id"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"           json:"product"`
	Quantity  uint    `gorm:"not null;default:1;check:quantity>0"   json:"quantity"`
}

type Order struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null"           json:"user_id"`
	TotalPrice float64   `gorm:"not null"                 json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
