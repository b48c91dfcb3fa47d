package models

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to exactly one user; OwnerID is set at creation and never
// updated. Every query against tasks is composed with the owner scope. The
// foreign key backs the cascade invariant at the store level: a create racing
// the owner's deletion fails on the constraint instead of persisting an
// orphan.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner"`
	Owner       User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
