package domain

import "gorm.io/gorm"

type Donor struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Email   string  `gorm:"uniqueIndex;not null" json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `gorm:"type:varchar(255)" json:"company,omitempty"`
	gorm.Model
}
