package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staysmart/hospitality-platform/internal/core/domain"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt guard (Redis in production).
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AdminCredential is the externally configured platform identity. The
// password arrives from the environment at process start, never as a literal.
type AdminCredential struct {
	Email    string
	Password string
}

// AuthService is the access control gate. It resolves a credential pair to
// one of three roles, checked in fixed priority order: platform admin,
// property owner, property staff.
type AuthService struct {
	properties ports.PropertyRepository
	staff      ports.StaffRepository
	throttle   LoginThrottle
	admin      AdminCredential
	jwtSecret  string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	properties ports.PropertyRepository,
	staff ports.StaffRepository,
	throttle LoginThrottle,
	admin AdminCredential,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		properties: properties,
		staff:      staff,
		throttle:   throttle,
		admin:      admin,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Authenticate resolves email+password to a signed token and identity.
//
// Branch order: (1) configured platform admin, exact match short-circuits;
// (2) property owner by contact email — correct credentials on a pending
// property fail with ErrPendingApproval; (3) staff account. Anything else is
// ErrInvalidCredentials. Repeated failures for the same email are throttled.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if tooMany, err := s.throttle.TooMany(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("throttle check failed, continuing")
	} else if tooMany {
		return "", nil, domain.ErrTooManyAttempts
	}

	identity, err := s.resolve(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if recErr := s.throttle.RecordFailure(ctx, email); recErr != nil {
				s.logger.Warn().Err(recErr).Str("email", email).Msg("failed to record login failure")
			}
		}
		return "", nil, err
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to reset login throttle")
	}

	token, err := s.generateToken(identity)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", email).Str("role", identity.Role).Msg("authenticated")
	return token, identity, nil
}

func (s *AuthService) resolve(ctx context.Context, email, password string) (*domain.Identity, error) {
	// 1. Platform admin: exact match on the configured credential.
	if s.admin.Email != "" && email == s.admin.Email {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1 {
			return &domain.Identity{
				Role:         domain.RoleAdmin,
				Email:        email,
				RedirectHint: "/admin/dashboard",
			}, nil
		}
		return nil, domain.ErrInvalidCredentials
	}

	// 2. Property owner by contact email. A correct credential on a
	// non-approved property is rejected with a distinct error.
	property, err := s.properties.FindByEmail(ctx, email)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(property.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		if property.State != domain.StateApproved {
			return nil, domain.ErrPendingApproval
		}
		return &domain.Identity{
			Role:         domain.RoleOwner,
			PropertyID:   property.ID,
			Email:        email,
			Name:         property.Name,
			RedirectHint: "/hotel/dashboard",
		}, nil
	} else if !errors.Is(err, domain.ErrPropertyNotFound) {
		return nil, err
	}

	// 3. Staff account.
	account, err := s.staff.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{
		Role:         domain.RoleStaff,
		PropertyID:   account.PropertyID,
		Email:        email,
		Name:         account.Name,
		RedirectHint: "/hotel/dashboard",
	}, nil
}

func (s *AuthService) generateToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"email":       identity.Email,
		"role":        identity.Role,
		"property_id": identity.PropertyID,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
