package usecase

import (
	"context"
	"errors"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/converter"
	"go-clinic-access/internal/delivery/dto"
	"go-clinic-access/internal/domain/entity"
	"go-clinic-access/internal/domain/repository"
	"go-clinic-access/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNotReceptionist   = errors.New("permission sets apply to receptionist accounts only")
	ErrInvalidCapability = errors.New("permission key is not a grantable capability")
)

type StaffPermissionUsecase interface {
	GetPermissions(ctx context.Context, userID uuid.UUID) (*dto.StaffPermissionResponse, error)
	UpdatePermissions(ctx context.Context, actorID uuid.UUID, userID uuid.UUID, req *dto.UpdateStaffPermissionsRequest) (*dto.StaffPermissionResponse, error)
}

type staffPermissionUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	auditService   service.AuditService
	sessionUsecase SessionUsecase
}

func NewStaffPermissionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	sessionUsecase SessionUsecase,
) StaffPermissionUsecase {
	return &staffPermissionUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		auditService:   auditService,
		sessionUsecase: sessionUsecase,
	}
}

func (u *staffPermissionUsecase) GetPermissions(ctx context.Context, userID uuid.UUID) (*dto.StaffPermissionResponse, error) {
	user, err := u.findReceptionist(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return converter.UserToStaffPermissionResponse(user), nil
}

func (u *staffPermissionUsecase) UpdatePermissions(ctx context.Context, actorID uuid.UUID, userID uuid.UUID, req *dto.UpdateStaffPermissionsRequest) (*dto.StaffPermissionResponse, error) {
	permissions, err := toPermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.findReceptionist(tx, userID)
	if err != nil {
		return nil, err
	}
	oldPermissions := user.Permissions

	if err := u.userRepo.UpdatePermissions(tx, userID, permissions); err != nil {
		u.log.Warnf("Failed to update permissions: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionPermissionsUpdate, "user", userID.String(), oldPermissions, permissions); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	// The next navigation must re-read the identity.
	if err := u.sessionUsecase.Invalidate(ctx, userID); err != nil {
		u.log.Warnf("Failed to evict identity after permission change: %+v", err)
	}

	user.Permissions = permissions
	return converter.UserToStaffPermissionResponse(user), nil
}

func (u *staffPermissionUsecase) findReceptionist(db *gorm.DB, userID uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if role, ok := authz.ParseRole(user.Role.RoleName); !ok || role != authz.RoleReceptionist {
		return nil, ErrNotReceptionist
	}
	return user, nil
}

// toPermissions keeps nil as nil so a null request resets to legacy defaults.
func toPermissions(requested map[string]bool) (entity.Permissions, error) {
	if requested == nil {
		return nil, nil
	}
	permissions := make(entity.Permissions, len(requested))
	for name, granted := range requested {
		c, ok := authz.ParseCapability(name)
		if !ok || !c.Grantable() {
			return nil, ErrInvalidCapability
		}
		permissions[string(c)] = granted
	}
	return permissions, nil
}
