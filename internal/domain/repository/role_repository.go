package repository

import (
	"context"

	"go-clinic-access/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error)
}
