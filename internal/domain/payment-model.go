package domain

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentCredited PaymentStatus = "Credited"
	PaymentPending  PaymentStatus = "Pending"
	PaymentFailed   PaymentStatus = "Failed"
)

// PaymentRecord is one immutable ledger entry. Rows are appended, never
// updated or deleted; aggregates are folds over the ledger.
type PaymentRecord struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	Reference string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	DonorID   *uint         `gorm:"index" json:"donor_id,omitempty"`
	Remarks   string        `gorm:"type:text" json:"remarks"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TotalReceived sums the credited entries. Order-independent.
func TotalReceived(ledger []PaymentRecord) float64 {
	var total float64
	for _, r := range ledger {
		if r.Status == PaymentCredited {
			total += r.Amount
		}
	}
	return total
}

// LastReceived returns the most recent credited entry, or nil if none.
// Same-day entries are common (Date is day precision), so ties go to the
// later ledger row.
func LastReceived(ledger []PaymentRecord) *PaymentRecord {
	var last *PaymentRecord
	for i := range ledger {
		r := &ledger[i]
		if r.Status != PaymentCredited {
			continue
		}
		if last == nil || !r.Date.Before(last.Date) {
			last = r
		}
	}
	return last
}

// PaymentAllotment maps donor funds to a student for a scholarship cycle.
// Bulk status changes made from the allotment screen run under the
// payment_allotment policy context.
type PaymentAllotment struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	UserID  uint    `gorm:"not null;index" json:"user_id"`
	DonorID uint    `gorm:"not null;index" json:"donor_id"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Cycle   string  `gorm:"type:varchar(20);not null" json:"cycle"` // e.g. 2026-27
	Remarks string  `gorm:"type:text" json:"remarks"`
	gorm.Model
}
