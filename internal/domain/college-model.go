package domain

import "time"

type College struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	District  string    `gorm:"type:varchar(255)" json:"district"`
	Domain    string    `gorm:"type:varchar(255);uniqueIndex" json:"domain,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
