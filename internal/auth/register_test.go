package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/users"
	"github.com/shopworks/storefront-backend/pkg/db"
	"github.com/shopworks/storefront-backend/pkg/enums"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
	"github.com/shopworks/storefront-backend/pkg/security"
)

func newRegisterService(t *testing.T) (RegisterService, *users.Repository) {
	t.Helper()

	dsn := "file:register_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer',
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)

	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             db.FromGorm(conn),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc, users.NewRepository(conn)
}

func TestRegisterCreatesCustomer(t *testing.T) {
	svc, repo := newRegisterService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, RegisterRequest{
		Username: "dave",
		Email:    "Dave@Example.com",
		Password: "longenoughpass",
	})
	require.NoError(t, err)

	assert.Equal(t, "dave", dto.Username)
	assert.Equal(t, "dave@example.com", dto.Email)
	assert.Equal(t, enums.UserRoleCustomer, dto.Role)
	assert.True(t, dto.IsActive)

	stored, err := repo.FindByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))

	ok, err := security.VerifyPassword("longenoughpass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newRegisterService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "erin",
		Email:    "erin@example.com",
		Password: "longenoughpass",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "erin",
		Email:    "other@example.com",
		Password: "longenoughpass",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "username already taken", typed.Message())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newRegisterService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "frank",
		Email:    "shared@example.com",
		Password: "longenoughpass",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "grace",
		Email:    "Shared@Example.com",
		Password: "longenoughpass",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "email already registered", typed.Message())
}

func TestRegisterEmptyPassword(t *testing.T) {
	svc, _ := newRegisterService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "henry",
		Email:    "henry@example.com",
	})
	require.Error(t, err)
}
