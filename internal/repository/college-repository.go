package repository

import (
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"gorm.io/gorm"
)

type CollegeRepository interface {
	AddCollege(c *domain.College) error
	FindByID(id uint) (*domain.College, error)
	FindByDomain(emailDomain string) (*domain.College, error)
	List(limit, offset int) ([]domain.College, error)
}

type collegeRepository struct {
	db *gorm.DB
}

func NewCollegeRepository(db *gorm.DB) CollegeRepository {
	return &collegeRepository{db: db}
}

func (r *collegeRepository) AddCollege(c *domain.College) error {
	return r.db.Create(c).Error
}

func (r *collegeRepository) FindByID(id uint) (*domain.College, error) {
	var c domain.College
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collegeRepository) FindByDomain(emailDomain string) (*domain.College, error) {
	var c domain.College
	if err := r.db.Where("domain = ?", emailDomain).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collegeRepository) List(limit, offset int) ([]domain.College, error) {
	var out []domain.College
	if err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
