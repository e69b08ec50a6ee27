package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// StudentProfile accumulates the data a student enters step by step. Once
// Submitted is set, the editable fields are read-only until an admin or a
// later lifecycle event reopens them.
type StudentProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// Personal
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	DOB       *time.Time `json:"dob,omitempty"`
	Gender    string     `gorm:"type:varchar(20)" json:"gender"`
	Address   string     `gorm:"type:text" json:"address"`

	// Academic
	CollegeID    *uint    `json:"college_id,omitempty"`
	Course       string   `json:"course"`
	YearOfStudy  int      `json:"year_of_study"`
	MarksPercent *float64 `json:"marks_percent,omitempty"`

	// Family
	GuardianName   string   `json:"guardian_name"`
	GuardianIncome *float64 `json:"guardian_income,omitempty"`

	Declaration bool       `json:"declaration"`
	Submitted   bool       `gorm:"not null;default:false" json:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	gorm.Model
}

// Complete reports whether every field a submission requires is populated.
func (p *StudentProfile) Complete() bool {
	return strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		p.DOB != nil &&
		strings.TrimSpace(p.Address) != "" &&
		strings.TrimSpace(p.Course) != "" &&
		strings.TrimSpace(p.GuardianName) != "" &&
		p.Declaration
}
