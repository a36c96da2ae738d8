// Package auth implements admin session management: credential checks,
// JWT issuance/refresh, and logout via token-version invalidation.
package auth

import (
	"context"
	"errors"

	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/repositories/cache"
	"quizadmin/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service interface {
	Login(ctx context.Context, email, password string) (*models.Admin, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, adminID uint) error
	GetAdminByID(ctx context.Context, id uint) (*models.Admin, error)
	GetTokenVersion(ctx context.Context, adminID uint) (int, error)
}

// Cache holds token versions so the auth middleware does not hit the
// database on every request. Failures degrade to repository reads.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type service struct {
	repo  repositories.AdminRepository
	cache Cache
}

func NewService(repo repositories.AdminRepository, c Cache) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.Admin, string, string, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if admin.Status != "active" {
		return nil, "", "", ErrAccountDisabled
	}

	access, refresh, err := utils.GenerateAdminTokens(s.claimsFor(admin))
	if err != nil {
		return nil, "", "", err
	}
	return admin, access, refresh, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := utils.ParseAdminToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	version, err := s.GetTokenVersion(ctx, claims.AdminID)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if claims.TokenVersion != version {
		return "", "", ErrInvalidToken
	}

	admin, err := s.repo.GetByID(ctx, claims.AdminID)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	access, refresh, err := utils.GenerateAdminTokens(s.claimsFor(admin))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Logout bumps the token version so every outstanding token becomes invalid.
func (s *service) Logout(ctx context.Context, adminID uint) error {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	admin.TokenVersion++
	if err := s.repo.Update(ctx, admin); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cache.AdminTokenVersionKey(adminID))
	}
	return nil
}

func (s *service) GetAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetTokenVersion(ctx context.Context, adminID uint) (int, error) {
	key := cache.AdminTokenVersionKey(adminID)
	if s.cache != nil {
		var version int
		if found, err := s.cache.Get(ctx, key, &version); err == nil && found {
			return version, nil
		}
	}

	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, admin.TokenVersion)
	}
	return admin.TokenVersion, nil
}

func (s *service) claimsFor(admin *models.Admin) *models.AdminClaims {
	return &models.AdminClaims{
		AdminID:      admin.ID,
		Email:        admin.Email,
		Role:         admin.Role,
		TokenVersion: admin.TokenVersion,
	}
}
