package entity

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the centralized account table. Accounts are registered and
// authenticated by a separate service; this one only reads them.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Role ID constants
const (
	RoleIDAdmin        = 1
	RoleIDHealthWorker = 2
	RoleIDClient       = 3
)

// Actor identifies who invokes a lifecycle operation. Handlers build it from
// the authenticated request context so the engine never reads auth globals.
type Actor struct {
	UUID uuid.UUID
	Role int
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleIDAdmin
}

func (a Actor) IsHealthWorker() bool {
	return a.Role == RoleIDHealthWorker
}

func (a Actor) IsClient() bool {
	return a.Role == RoleIDClient
}
