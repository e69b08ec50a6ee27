package repository

import (
	"errors"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"gorm.io/gorm"
)

// PaymentRepository appends to and reads the payment ledger. There is no
// update or delete; the ledger is append-only.
type PaymentRepository interface {
	AppendRecord(rec *domain.PaymentRecord) error
	ListByUserID(userID uint) ([]domain.PaymentRecord, error)

	CreateAllotment(a *domain.PaymentAllotment) error
	ListAllotments(cycle string, limit, offset int) ([]domain.PaymentAllotment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) AppendRecord(rec *domain.PaymentRecord) error {
	if rec == nil {
		return errors.New("nil payment record")
	}
	return r.db.Create(rec).Error
}

func (r *paymentRepository) ListByUserID(userID uint) ([]domain.PaymentRecord, error) {
	var recs []domain.PaymentRecord
	if err := r.db.Where("user_id = ?", userID).Order("date ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *paymentRepository) CreateAllotment(a *domain.PaymentAllotment) error {
	if a == nil {
		return errors.New("nil allotment")
	}
	return r.db.Create(a).Error
}

func (r *paymentRepository) ListAllotments(cycle string, limit, offset int) ([]domain.PaymentAllotment, error) {
	var out []domain.PaymentAllotment

	q := r.db.Order("created_at ASC").Limit(limit).Offset(offset)
	if cycle != "" {
		q = q.Where("cycle = ?", cycle)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

