package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/config"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestSignupHashesPassword(t *testing.T) {
	auth, db := newAuthService(t)

	resp := signup(t, auth, "alice@example.com")

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", resp.User.ID).Error)

	assert.NotEqual(t, "horse-battery-staple", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("horse-battery-staple")))
}

func TestSignupNormalizesInput(t *testing.T) {
	auth, _ := newAuthService(t)

	resp, err := auth.Signup(&dto.SignupRequest{
		Name:     "  Bob  ",
		Email:    "  Bob@Example.COM ",
		Password: "secret-enough",
		Age:      30,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob", resp.User.Name)
	assert.Equal(t, "bob@example.com", resp.User.Email)
	assert.Equal(t, 30, resp.User.Age)
}

func TestSignupValidation(t *testing.T) {
	auth, _ := newAuthService(t)
	signup(t, auth, "taken@example.com")

	tests := []struct {
		name string
		req  dto.SignupRequest
	}{
		{"empty name", dto.SignupRequest{Email: "a@b.com", Password: "secret-enough"}},
		{"invalid email", dto.SignupRequest{Name: "A", Email: "not-an-email", Password: "secret-enough"}},
		{"short password", dto.SignupRequest{Name: "A", Email: "a@b.com", Password: "short"}},
		{"forbidden password", dto.SignupRequest{Name: "A", Email: "a@b.com", Password: "MyPassword1"}},
		{"negative age", dto.SignupRequest{Name: "A", Email: "a@b.com", Password: "secret-enough", Age: -1}},
		{"duplicate email", dto.SignupRequest{Name: "A", Email: "taken@example.com", Password: "secret-enough"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Signup(&tt.req)
			require.Error(t, err)

			appErr, ok := err.(*apperror.AppError)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, "validation_error", appErr.Type)
		})
	}
}

// The unique index on users.email is what holds under concurrency; the
// driver's constraint error must come back as gorm.ErrDuplicatedKey so the
// services can map it to a validation error instead of a 500.
func TestDuplicateEmailErrorIsTranslated(t *testing.T) {
	auth, db := newAuthService(t)
	resp := signup(t, auth, "race@example.com")

	clone := models.User{
		ID:       uuid.New(),
		Name:     "Imposter",
		Email:    resp.User.Email,
		Password: "not-a-real-hash",
	}
	err := db.Create(&clone).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	auth, _ := newAuthService(t)
	signup(t, auth, "carol@example.com")

	_, unknownErr := auth.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "horse-battery-staple"})
	_, wrongErr := auth.Login(&dto.LoginRequest{Email: "carol@example.com", Password: "wrong-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknownApp := unknownErr.(*apperror.AppError)
	wrongApp := wrongErr.(*apperror.AppError)

	assert.Equal(t, unknownApp.Code, wrongApp.Code)
	assert.Equal(t, unknownApp.Type, wrongApp.Type)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, 401, wrongApp.Code)
}

func TestTokenSetGrowsPerLogin(t *testing.T) {
	auth, db := newAuthService(t)
	resp := signup(t, auth, "dave@example.com")

	tokens := []string{resp.Token}
	for i := 0; i < 2; i++ {
		login, err := auth.Login(&dto.LoginRequest{Email: "dave@example.com", Password: "horse-battery-staple"})
		require.NoError(t, err)
		tokens = append(tokens, login.Token)
	}

	var count int64
	db.Model(&models.SessionToken{}).Where("user_id = ?", resp.User.ID).Count(&count)
	assert.EqualValues(t, 3, count)

	for _, token := range tokens {
		user, err := auth.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, user.ID)
	}
}

func TestRevokeSingleToken(t *testing.T) {
	auth, db := newAuthService(t)
	resp := signup(t, auth, "erin@example.com")

	login, err := auth.Login(&dto.LoginRequest{Email: "erin@example.com", Password: "horse-battery-staple"})
	require.NoError(t, err)

	require.NoError(t, auth.RevokeToken(resp.User.ID, resp.Token))

	_, err = auth.VerifyToken(resp.Token)
	require.Error(t, err, "revoked token must fail verification even though its signature is valid")

	_, err = auth.VerifyToken(login.Token)
	assert.NoError(t, err, "other sessions must survive a single revocation")

	var count int64
	db.Model(&models.SessionToken{}).Where("user_id = ?", resp.User.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRevokeAllEmptiesTokenSet(t *testing.T) {
	auth, db := newAuthService(t)
	resp := signup(t, auth, "frank@example.com")

	login, err := auth.Login(&dto.LoginRequest{Email: "frank@example.com", Password: "horse-battery-staple"})
	require.NoError(t, err)

	require.NoError(t, auth.RevokeAll(resp.User.ID))

	var count int64
	db.Model(&models.SessionToken{}).Where("user_id = ?", resp.User.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	for _, token := range []string{resp.Token, login.Token} {
		_, err := auth.VerifyToken(token)
		assert.Error(t, err)
	}
}

func TestVerifyTokenRejectsForgeries(t *testing.T) {
	auth, db := newAuthService(t)
	resp := signup(t, auth, "grace@example.com")

	// Same user, different signing secret.
	otherCfg := &config.Config{JWTSecret: "other-secret"}
	forger := NewAuthService(db, otherCfg, NewEmailService(otherCfg))
	forged, err := forger.IssueToken(resp.User)
	require.NoError(t, err)

	_, err = auth.VerifyToken(forged)
	assert.Error(t, err)

	_, err = auth.VerifyToken("not-a-token")
	assert.Error(t, err)

	_, err = auth.VerifyToken("")
	assert.Error(t, err)
}
