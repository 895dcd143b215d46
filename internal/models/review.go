package models

import "time"

// Review is a 1–5 score left by a user on a product.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID  uint      `json:"product_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	Score      int       `json:"score" gorm:"not null"`
	Comment    string    `json:"comment"`
	ReviewedAt time.Time `json:"reviewed_at" gorm:"autoCreateTime"`
}

// ReviewWithAuthor is a review joined with its author's name.
type ReviewWithAuthor struct {
	Review
	UserName string `json:"user_name"`
}
