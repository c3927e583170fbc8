package repository

import (
	"go-clinic-access/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	UpdatePermissions(db *gorm.DB, id uuid.UUID, permissions entity.Permissions) error
}
