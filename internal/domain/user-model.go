package domain

import "gorm.io/gorm"

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex" json:"google_id,omitempty"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	Picture      *string `json:"picture,omitempty"`
	gorm.Model
}
