package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleClient      Role = "Client"
	RoleCoordinator Role = "Co-ordinator"
	RoleCreator     Role = "Creator"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleCoordinator, RoleCreator:
		return true
	}
	return false
}

type UserType string

const (
	UserTypeCore    UserType = "Core"
	UserTypePremium UserType = "Premium"
)

// User is a login credential. Accounts are provisioned by admins only;
// there is no self-service signup.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null" json:"role"`
	UserType     UserType       `gorm:"type:varchar(20)" json:"user_type,omitempty"`
	// CoordinatorUsername links a creator to the coordinator responsible for them.
	CoordinatorUsername string         `gorm:"type:varchar(100)" json:"coordinator_username,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Videos []Video `gorm:"foreignKey:CreatorUsername;references:Username" json:"-"`
}
