package repository

import (
	"errors"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Record(entry *domain.AuditLog) error
	List(limit, offset int) ([]domain.AuditLog, error)
	ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(entry *domain.AuditLog) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}
	return r.db.Create(entry).Error
}

func (r *auditRepository) List(limit, offset int) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *auditRepository) ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	err := r.db.
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
