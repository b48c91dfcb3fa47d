package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Password stores the bcrypt hash, never the raw
// secret; Avatar holds the resized PNG bytes. Both are excluded from JSON
// along with the token set.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Age       int            `gorm:"default:0" json:"age"`
	Avatar    []byte         `gorm:"type:bytea" json:"-"`
	Tokens    []SessionToken `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
