package repository

import (
	"errors"

	"go-clinic-access/internal/domain/entity"
	domainRepo "go-clinic-access/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

// FindAll returns one page of audit entries, newest first, optionally
// filtered by action, together with the total count for the filter.
func (r *auditLogRepository) FindAll(db *gorm.DB, action string, offset, limit int) ([]entity.AuditLog, int64, error) {
	byAction := func(tx *gorm.DB) *gorm.DB {
		if action != "" {
			return tx.Where("action = ?", action)
		}
		return tx
	}

	var total int64
	if err := db.Model(&entity.AuditLog{}).Scopes(byAction).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.AuditLog
	err := db.Scopes(byAction).
		Preload("User.Role").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Preload("User.Role").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
