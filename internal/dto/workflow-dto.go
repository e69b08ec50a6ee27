package dto

import "github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"

// StudentStateResponse is the full picture a student dashboard needs: the
// status with its display metadata, the resolved screen per page, and the
// accumulated profile/document/payment state.
type StudentStateResponse struct {
	UserID      uint                                    `json:"user_id"`
	Status      string                                  `json:"status"`
	StatusLabel string                                  `json:"status_label"`
	StatusColor string                                  `json:"status_color"`
	Screens     map[status.Page]status.ViewDescriptor   `json:"screens"`
	Profile     ProfileResponse                         `json:"profile"`
	Documents   map[status.DocumentKey]DocumentResponse `json:"documents"`
}

type ProfileInput struct {
	FirstName    string   `json:"first_name" validate:"required"`
	LastName     string   `json:"last_name" validate:"required"`
	DOB          string   `json:"dob" validate:"required"` // YYYY-MM-DD
	Gender       string   `json:"gender"`
	Address      string   `json:"address" validate:"required"`
	CollegeID    *uint    `json:"college_id,omitempty"`
	Course       string   `json:"course" validate:"required"`
	YearOfStudy  int      `json:"year_of_study"`
	MarksPercent *float64 `json:"marks_percent,omitempty"`

	GuardianName   string   `json:"guardian_name" validate:"required"`
	GuardianIncome *float64 `json:"guardian_income,omitempty"`

	Declaration bool `json:"declaration"`
}

type ProfileResponse struct {
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	DOB          *string  `json:"dob,omitempty"`
	Gender       string   `json:"gender"`
	Address      string   `json:"address"`
	CollegeID    *uint    `json:"college_id,omitempty"`
	Course       string   `json:"course"`
	YearOfStudy  int      `json:"year_of_study"`
	MarksPercent *float64 `json:"marks_percent,omitempty"`

	GuardianName   string   `json:"guardian_name"`
	GuardianIncome *float64 `json:"guardian_income,omitempty"`

	Declaration bool `json:"declaration"`
	Submitted   bool `json:"submitted"`
}

type DocumentResponse struct {
	Name string  `json:"name"`
	Size int64   `json:"size"`
	URL  *string `json:"url,omitempty"`
}

type LedgerResponse struct {
	Entries       []PaymentEntry `json:"entries"`
	TotalReceived float64        `json:"total_received"`
	LastReceived  *PaymentEntry  `json:"last_received,omitempty"`
}

type PaymentEntry struct {
	Reference string  `json:"reference"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	DonorID   *uint   `json:"donor_id,omitempty"`
	Remarks   string  `json:"remarks"`
}
