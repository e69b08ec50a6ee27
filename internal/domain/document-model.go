package domain

import (
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"gorm.io/gorm"
)

// StudentDocument is one uploaded file in a student's document set, keyed
// by the fixed vocabulary in the status package. One row per (user, key);
// re-uploading replaces the record.
type StudentDocument struct {
	ID     uint               `gorm:"primaryKey" json:"id"`
	UserID uint               `gorm:"not null;index:uidx_student_documents_key,unique" json:"user_id"`
	Key    status.DocumentKey `gorm:"type:varchar(40);not null;index:uidx_student_documents_key,unique" json:"key"`

	FileName string  `gorm:"not null" json:"name"`
	FileSize int64   `json:"size"`
	FileURL  *string `gorm:"type:text" json:"url,omitempty"`

	MimeType *string `gorm:"type:varchar(100)" json:"mime_type,omitempty"`
	gorm.Model
}
