package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/auth"
	"github.com/prijslijst/pricelist-backend/pkg/config"
	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  role TEXT NOT NULL DEFAULT 'employee',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "pricelist-test",
		ExpirationMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newUserFixture(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupUserTestDB(t)
	svc, err := NewService(NewRepository(db), testJWTConfig(), testPasswordConfig(), nil)
	require.NoError(t, err)
	return svc, db
}

func TestLoginIssuesToken(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()
	username := "staff-" + uuid.NewString()

	created, err := svc.CreateUser(ctx, UserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
		Role:     enums.UserRoleEmployee,
	})
	require.NoError(t, err)
	assert.Empty(t, created.PasswordHash)

	result, err := svc.Login(ctx, LoginInput{Username: username, Password: "correct horse battery"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.UserID)
	assert.Equal(t, enums.UserRoleEmployee, result.Role)

	claims, err := auth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, username, claims.Username)

	var stored models.User
	require.NoError(t, db.Where("id = ?", created.ID).First(&stored).Error)
	require.NotNil(t, stored.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *stored.LastLoginAt, time.Minute)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()
	username := "staff-" + uuid.NewString()

	_, err := svc.CreateUser(ctx, UserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
		Role:     enums.UserRoleEmployee,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: username, Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginRejectsUnknownAndInactiveUsersAlike(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Username: "nobody-" + uuid.NewString(), Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	username := "staff-" + uuid.NewString()
	created, err := svc.CreateUser(ctx, UserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
		Role:     enums.UserRoleAdmin,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(ctx, created.ID))

	_, err = svc.Login(ctx, LoginInput{Username: username, Password: "correct horse battery"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestCreateUserRejectsInvalidRole(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), UserInput{
		Username: "staff-" + uuid.NewString(),
		Email:    "staff@example.com",
		Password: "correct horse battery",
		Role:     enums.UserRole("owner"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
