package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/converter"
	"go-clinic-access/internal/delivery/dto"
	"go-clinic-access/internal/domain/entity"
	"go-clinic-access/internal/domain/repository"
	"go-clinic-access/internal/infrastructure/metrics"
	"go-clinic-access/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrIdentityUnavailable = errors.New("identity store unavailable")
)

type SessionUsecase interface {
	// Resolve returns the identity bound to userID, or nil when the account
	// does not exist or is inactive.
	Resolve(ctx context.Context, userID uuid.UUID) (*authz.Identity, error)
	Me(ctx context.Context, userID uuid.UUID, identity authz.Identity) *dto.SessionResponse
	Invalidate(ctx context.Context, userID uuid.UUID) error
	Logout(ctx context.Context, userID uuid.UUID, tokenID string) error
	// Terminate ends a session whose identity could not be loaded.
	Terminate(ctx context.Context, userID uuid.UUID, tokenID string, cause error) error
}

type sessionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	engine        *authz.Engine
	userRepo      repository.UserRepository
	identityCache service.IdentityCacheService
	sessionStore  service.SessionStore
	auditService  service.AuditService
	metrics       *metrics.Metrics
}

func NewSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	engine *authz.Engine,
	userRepo repository.UserRepository,
	identityCache service.IdentityCacheService,
	sessionStore service.SessionStore,
	auditService service.AuditService,
	metrics *metrics.Metrics,
) SessionUsecase {
	return &sessionUsecase{
		db:            db,
		log:           log,
		engine:        engine,
		userRepo:      userRepo,
		identityCache: identityCache,
		sessionStore:  sessionStore,
		auditService:  auditService,
		metrics:       metrics,
	}
}

func (u *sessionUsecase) Resolve(ctx context.Context, userID uuid.UUID) (*authz.Identity, error) {
	raw, generation, err := u.identityCache.Get(ctx, userID)
	cacheable := err == nil
	switch {
	case err != nil:
		u.metrics.ObserveIdentityCache(metrics.CacheError)
		u.log.Warnf("Failed to read identity cache, falling back to database: %+v", err)
	case raw != nil:
		u.metrics.ObserveIdentityCache(metrics.CacheHit)
	default:
		u.metrics.ObserveIdentityCache(metrics.CacheMiss)
	}

	if raw == nil {
		user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
		if err != nil {
			u.log.Warnf("Failed to find user %s: %+v", userID, err)
			return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
		}
		if user == nil || !user.IsActive {
			return nil, nil
		}

		account := converter.UserToRawAccount(user)
		raw = &account
		if cacheable {
			if err := u.identityCache.Set(ctx, userID, generation, account); err != nil {
				u.log.Warnf("Failed to cache identity: %+v", err)
			}
		}
	}

	identity, err := authz.Load(*raw)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (u *sessionUsecase) Me(ctx context.Context, userID uuid.UUID, identity authz.Identity) *dto.SessionResponse {
	return converter.IdentityToSessionResponse(userID, identity, u.engine.Policy())
}

func (u *sessionUsecase) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return u.identityCache.Invalidate(ctx, userID)
}

func (u *sessionUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := u.sessionStore.Revoke(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke token: %+v", err)
		return err
	}

	if err := u.Invalidate(ctx, userID); err != nil {
		u.log.Warnf("Failed to evict identity on logout: %+v", err)
	}

	if err := u.auditService.LogEvent(ctx, u.db, &userID, entity.AuditActionSessionLogout, entity.JSON{
		"token_id": tokenID,
	}); err != nil {
		u.log.Warnf("Failed to audit logout: %+v", err)
	}

	return nil
}

func (u *sessionUsecase) Terminate(ctx context.Context, userID uuid.UUID, tokenID string, cause error) error {
	if err := u.sessionStore.Revoke(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke token: %+v", err)
		return err
	}

	if err := u.Invalidate(ctx, userID); err != nil {
		u.log.Warnf("Failed to evict identity on terminate: %+v", err)
	}

	details := entity.JSON{"token_id": tokenID}
	if cause != nil {
		details["cause"] = cause.Error()
	}
	if err := u.auditService.LogEvent(ctx, u.db, &userID, entity.AuditActionSessionTerminate, details); err != nil {
		u.log.Warnf("Failed to audit session termination: %+v", err)
	}

	return nil
}
