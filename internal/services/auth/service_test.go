package auth

import (
	"context"
	"testing"

	"quizadmin/internal/models"
	"quizadmin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admins map[uint]*models.Admin
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	admin, ok := r.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, admin := range r.admins {
		if admin.Email == email {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *fakeAdminRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

func newRepoWithAdmin(t *testing.T, password, status string) *fakeAdminRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.Admin{
		Email:    "ops@example.com",
		Password: string(hash),
		Name:     "Ops",
		Role:     "admin",
		Status:   status,
	}
	admin.ID = 1
	return &fakeAdminRepo{admins: map[uint]*models.Admin{1: admin}}
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	svc := NewService(newRepoWithAdmin(t, "s3cret", "active"), nil)

	admin, access, refresh, err := svc.Login(ctx, "ops@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(1), admin.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(newRepoWithAdmin(t, "s3cret", "active"), nil)

	_, _, _, err := svc.Login(context.Background(), "ops@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(newRepoWithAdmin(t, "s3cret", "active"), nil)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(newRepoWithAdmin(t, "s3cret", "inactive"), nil)

	_, _, _, err := svc.Login(context.Background(), "ops@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshIssuesNewTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	svc := NewService(newRepoWithAdmin(t, "s3cret", "active"), nil)

	_, _, refresh, err := svc.Login(ctx, "ops@example.com", "s3cret")
	require.NoError(t, err)

	access2, refresh2, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)
}

func TestLogoutInvalidatesOutstandingTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	repo := newRepoWithAdmin(t, "s3cret", "active")
	svc := NewService(repo, nil)

	_, _, refresh, err := svc.Login(ctx, "ops@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, 1))

	_, _, err = svc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "tokens minted before logout must be rejected")

	version, err := svc.GetTokenVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestRefreshGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(newRepoWithAdmin(t, "s3cret", "active"), nil)

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
