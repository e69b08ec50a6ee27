package repository

import (
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"gorm.io/gorm"
)

type DonorRepository interface {
	AddDonor(d *domain.Donor) error
	FindByID(id uint) (*domain.Donor, error)
	List(limit, offset int) ([]domain.Donor, error)
}

type donorRepository struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

func (r *donorRepository) AddDonor(d *domain.Donor) error {
	return r.db.Create(d).Error
}

func (r *donorRepository) FindByID(id uint) (*domain.Donor, error) {
	var d domain.Donor
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donorRepository) List(limit, offset int) ([]domain.Donor, error) {
	var out []domain.Donor
	if err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
