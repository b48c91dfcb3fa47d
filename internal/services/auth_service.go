package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/config"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login failures share one message so "no such email" and "wrong password"
// stay indistinguishable to the caller.
const genericLoginMessage = "unable to authenticate"

const authMessage = "please authenticate"

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	email *EmailService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, email *EmailService) *AuthService {
	return &AuthService{db: db, cfg: cfg, email: email}
}

func (s *AuthService) Signup(req *dto.SignupRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if req.Age < 0 {
		return nil, apperror.NewValidation("age must be a positive number")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperror.NewValidation("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Age:      req.Age,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The unique index is authoritative; the First() above only exists
		// for the friendlier message on the common path.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewValidation("email is already registered")
		}
		return nil, apperror.NewInternal(fmt.Errorf("failed to create user: %w", err))
	}

	s.email.SendWelcome(user.Email, user.Name)

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: &user, Token: token}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperror.NewAuth(genericLoginMessage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuth(genericLoginMessage)
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: &user, Token: token}, nil
}

// IssueToken signs a new bearer token for the user and appends it to the
// active set. Each token carries a unique jti so concurrent logins never
// collide; rows are additive, one per live session.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("failed to sign token: %w", err))
	}

	record := models.SessionToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(signed),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", apperror.NewInternal(fmt.Errorf("failed to store session token: %w", err))
	}

	return signed, nil
}

// VerifyToken resolves a raw bearer token to its user. A token must pass the
// signature check AND still be present in the user's active set: revoked
// tokens remain structurally valid but are rejected on set membership.
func (s *AuthService) VerifyToken(raw string) (*models.User, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperror.NewAuth(authMessage)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return nil, apperror.NewAuth(authMessage)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperror.NewAuth(authMessage)
	}

	var session models.SessionToken
	if err := s.db.Where("token_hash = ? AND user_id = ?", hashToken(raw), userID).First(&session).Error; err != nil {
		return nil, apperror.NewAuth(authMessage)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperror.NewAuth(authMessage)
	}

	return &user, nil
}

// RevokeToken removes exactly one token from the user's active set.
func (s *AuthService) RevokeToken(userID uuid.UUID, raw string) error {
	if err := s.db.Where("token_hash = ? AND user_id = ?", hashToken(raw), userID).
		Delete(&models.SessionToken{}).Error; err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to revoke token: %w", err))
	}
	return nil
}

// RevokeAll clears the user's active set; every outstanding token dies.
func (s *AuthService) RevokeAll(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.SessionToken{}).Error; err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to revoke tokens: %w", err))
	}
	return nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperror.NewValidation("email is invalid")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < 7 {
		return apperror.NewValidation("password must be at least 7 characters")
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return apperror.NewValidation(`password cannot contain "password"`)
	}
	return nil
}
