package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/errs"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/limiter"
	"github.com/spec-kit/catalog-service/internal/repository"
)

// AuthService is the only component that turns a CPF/password pair into a
// token. It keeps no session state; everything it issues is recomputable
// from the token string and the signing secret.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	lim        limiter.Limiter
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Limiter    limiter.Limiter
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		lim:        deps.Limiter,
		dispatcher: deps.Dispatcher,
	}
}

// Authenticate verifies the CPF/password pair and mints a token on success.
// Unknown CPF and wrong password are indistinguishable to the caller; the
// store lookup is the only I/O on this path.
func (s *AuthService) Authenticate(ctx context.Context, cpf, password, ip string) (*domain.IssuedToken, error) {
	ipHash := limiter.HashIP(ip)

	if s.lim != nil {
		allowed, _, err := s.lim.Allow(ctx, cpf, ipHash)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, errs.ErrRateLimited
		}
	}

	user, err := s.users.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, cpf, ipHash)
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if blocked := s.recordFailure(ctx, cpf, ipHash); blocked {
			return nil, errs.ErrRateLimited
		}
		return nil, errs.ErrInvalidCredentials
	}

	if s.lim != nil {
		_ = s.lim.Success(ctx, cpf, ipHash)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventLoginSucceeded,
		Actor: events.Actor{SubjectID: user.ID, Role: user.Role},
		Payload: events.LoginPayload{
			UserID:    user.ID,
			ExpiresAt: exp,
		},
	})

	return &domain.IssuedToken{
		Token:     token,
		Type:      domain.TokenType,
		SubjectID: user.ID,
		Name:      user.Name,
		CPF:       user.CPF,
		Role:      user.Role,
		ExpiresAt: exp,
	}, nil
}

// Introspect validates a presented token against the freshly loaded identity
// it claims to belong to and returns that identity. A token for a deleted
// user fails here even when its signature and expiry are fine.
func (s *AuthService) Introspect(ctx context.Context, tokenStr string) (*domain.User, *auth.Claims, error) {
	subjectID, err := s.tokenMgr.SubjectID(tokenStr)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errs.ErrInvalidToken
		}
		return nil, nil, err
	}

	claims, err := s.tokenMgr.ValidateForSubject(tokenStr, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) recordFailure(ctx context.Context, cpf string, ipHash []byte) bool {
	if s.lim == nil {
		return false
	}
	blocked, _, err := s.lim.Failure(ctx, cpf, ipHash)
	return err == nil && blocked
}
