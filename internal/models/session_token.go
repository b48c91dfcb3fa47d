package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is one live bearer token for a user. A signed token is only
// valid while its hash row exists; deleting the row revokes that session
// without touching the others.
type SessionToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
