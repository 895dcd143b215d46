package models

import "time"

// User represents a customer account of the store.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Credential string    `json:"-" gorm:"not null"` // never serialized
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	Active     bool      `json:"active" gorm:"default:true"`
}
