package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/config"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database. Connections are
// capped at one because each sqlite :memory: connection is its own database.
// Foreign keys and error translation are enabled to match the production
// connection.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SessionToken{}, &models.Task{}))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{JWTSecret: "test-signing-secret"}
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	return NewAuthService(db, cfg, NewEmailService(cfg)), db
}

// createOwner inserts a minimal user row so task rows can reference it.
func createOwner(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Name:     "Owner",
		Email:    uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func signup(t *testing.T, auth *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := auth.Signup(&dto.SignupRequest{
		Name:     "Test User",
		Email:    email,
		Password: "horse-battery-staple",
	})
	require.NoError(t, err)
	return resp
}
