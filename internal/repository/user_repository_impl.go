package repository

import (
	"errors"

	"go-clinic-access/internal/domain/entity"
	domainRepo "go-clinic-access/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

// FindByID loads an account with its role. A missing account returns nil, nil.
func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePermissions(db *gorm.DB, id uuid.UUID, permissions entity.Permissions) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("permissions", permissions).Error
}
