package usecase

import (
	"context"
	"errors"

	"go-clinic-access/internal/converter"
	"go-clinic-access/internal/delivery/dto"
	"go-clinic-access/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

// AuditLogUsecase reads the audit trail for the admin screens. Entries are
// written by AuditService; nothing here mutates them.
type AuditLogUsecase interface {
	List(ctx context.Context, req *dto.AuditLogListRequest) (*dto.AuditLogListResponse, error)
	Get(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context, req *dto.AuditLogListRequest) (*dto.AuditLogListResponse, error) {
	offset := (req.Page - 1) * req.Limit
	logs, total, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), req.Action, offset, req.Limit)
	if err != nil {
		u.log.WithFields(logrus.Fields{"action": req.Action, "page": req.Page}).Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}, nil
}

func (u *auditLogUsecase) Get(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithField("audit_log_id", id).Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
