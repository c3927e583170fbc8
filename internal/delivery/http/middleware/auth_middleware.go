package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-clinic-access/internal/authz"
	"go-clinic-access/internal/service"
	"go-clinic-access/internal/usecase"
	"go-clinic-access/pkg/jwt"
	"go-clinic-access/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	TokenIDKey  contextKey = "token_id"
	IdentityKey contextKey = "identity"
)

// AuthMiddleware binds the session identity to the request. A request
// without a live token passes through anonymous; the route guard decides
// what an anonymous request may reach.
type AuthMiddleware struct {
	log            *logrus.Logger
	engine         *authz.Engine
	jwtService     *jwt.JWTService
	sessionStore   service.SessionStore
	sessionUsecase usecase.SessionUsecase
}

func NewAuthMiddleware(
	log *logrus.Logger,
	engine *authz.Engine,
	jwtService *jwt.JWTService,
	sessionStore service.SessionStore,
	sessionUsecase usecase.SessionUsecase,
) *AuthMiddleware {
	return &AuthMiddleware{
		log:            log,
		engine:         engine,
		jwtService:     jwtService,
		sessionStore:   sessionStore,
		sessionUsecase: sessionUsecase,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			m.log.Debugf("Ignoring bearer token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		// Check if token exists in Redis (not revoked)
		active, err := m.sessionStore.IsActive(r.Context(), claims.UserID, claims.TokenID)
		if err != nil {
			m.log.Warnf("Failed to validate token: %+v", err)
			response.ServiceUnavailable(w, "Failed to validate token")
			return
		}
		if !active {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.sessionUsecase.Resolve(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, authz.ErrMalformedIdentity) {
				m.log.WithField("user_id", claims.UserID).Warnf("Malformed identity, ending session: %v", err)
				if err := m.sessionUsecase.Terminate(r.Context(), claims.UserID, claims.TokenID, err); err != nil {
					m.log.Warnf("Failed to terminate session: %+v", err)
				}
				redirect(w, m.engine.Policy(), http.StatusUnauthorized, authz.TargetLoginEntry)
				return
			}
			m.log.Warnf("Failed to resolve identity: %+v", err)
			response.ServiceUnavailable(w, "Identity store unavailable")
			return
		}
		if identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
		ctx = context.WithValue(ctx, IdentityKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func redirect(w http.ResponseWriter, policy *authz.PolicyTable, status int, target authz.Target) {
	response.RedirectTo(w, status, string(target), policy.Location(target))
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetIdentityFromContext returns nil for an anonymous request.
func GetIdentityFromContext(ctx context.Context) *authz.Identity {
	identity, _ := ctx.Value(IdentityKey).(*authz.Identity)
	return identity
}
