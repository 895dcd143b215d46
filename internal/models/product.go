package models

import "time"

// Product represents a product in the store.
// Stock is signed: checkout decrements it without checking availability.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null" validate:"required,min=2,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" gorm:"not null" validate:"gte=0"`
	Stock       int       `json:"stock" gorm:"default:0" validate:"gte=0"`
	Category    string    `json:"category" gorm:"not null" validate:"required,max=50"`
	AvgRating   float64   `json:"avg_rating" gorm:"column:avg_rating;default:0"`
	RatingCount int       `json:"rating_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
