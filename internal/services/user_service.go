package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/dto"
	"github.com/karadenizdev/taskman-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	email *EmailService
}

func NewUserService(db *gorm.DB, email *EmailService) *UserService {
	return &UserService{db: db, email: email}
}

// UpdateProfile applies a patch body to the user. The body is strict-decoded
// against the {name, email, password, age} allow-list; an unknown key fails
// before anything is written. A changed password is re-hashed here.
func (s *UserService) UpdateProfile(user *models.User, body []byte) error {
	var req dto.UpdateUserRequest
	if err := dto.DecodeStrict(body, &req); err != nil {
		return apperror.NewValidation("invalid updates")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperror.NewValidation("name is required")
		}
		user.Name = name
	}

	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return err
		}
		var existing models.User
		if err := s.db.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error; err == nil {
			return apperror.NewValidation("email is already registered")
		}
		user.Email = email
	}

	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("failed to hash password: %w", err))
		}
		user.Password = string(hash)
	}

	if req.Age != nil {
		if *req.Age < 0 {
			return apperror.NewValidation("age must be a positive number")
		}
		user.Age = *req.Age
	}

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.NewValidation("email is already registered")
		}
		return apperror.NewInternal(fmt.Errorf("failed to update user: %w", err))
	}
	return nil
}

// DeleteSelf removes the user and everything hanging off the account. Tasks
// and session tokens go first, inside one transaction with the user row, so
// a failed cascade leaves the account untouched rather than orphaning tasks.
func (s *UserService) DeleteSelf(user *models.User) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.SessionToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to delete user: %w", err))
	}

	s.email.SendCancellation(user.Email, user.Name)
	return nil
}

// SetAvatar validates the upload, resizes it to 250x250, and stores the
// resulting PNG on the user row.
func (s *UserService) SetAvatar(user *models.User, filename string, data []byte) error {
	png, err := ProcessAvatar(filename, data)
	if err != nil {
		return err
	}

	user.Avatar = png
	if err := s.db.Model(user).Update("avatar", png).Error; err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to store avatar: %w", err))
	}
	return nil
}

// DeleteAvatar clears the stored avatar.
func (s *UserService) DeleteAvatar(user *models.User) error {
	user.Avatar = nil
	if err := s.db.Model(user).Update("avatar", nil).Error; err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to delete avatar: %w", err))
	}
	return nil
}

// GetAvatar returns the stored PNG for any user id. Missing user and missing
// avatar are the same not-found to the caller.
func (s *UserService) GetAvatar(userID uuid.UUID) ([]byte, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperror.NewNotFound()
	}
	if len(user.Avatar) == 0 {
		return nil, apperror.NewNotFound()
	}
	return user.Avatar, nil
}
