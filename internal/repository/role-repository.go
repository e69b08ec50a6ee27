package repository

import (
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/domain"
	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByCode(code string) (*domain.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByCode(code string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.Where("code = ?", code).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

