package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names accepted in User.Roles
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleSuperUser = "superUser"
)

// ValidRoles lists every role the API accepts in filters and updates.
var ValidRoles = []string{RoleUser, RoleAdmin, RoleSuperUser}

// User represents an account stored in the database. The password column
// holds a bcrypt hash and is never serialized.
type User struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FullName        string     `json:"fullName" gorm:"type:varchar(255);not null"`
	Email           string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password        string     `json:"-" gorm:"type:varchar(255);not null"`
	Roles           []string   `json:"roles" gorm:"serializer:json;not null"`
	IsActive        bool       `json:"isActive" gorm:"not null;default:true"`
	LastUpdatedByID *uuid.UUID `json:"lastUpdatedById,omitempty" gorm:"type:uuid;index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Self reference to the admin who performed the last mutation on this
	// account. Resolved by id lookup, never preloaded.
	LastUpdatedBy *User `json:"-" gorm:"foreignKey:LastUpdatedByID"`
}

// BeforeCreate assigns the uuid primary key and the default role set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{RoleUser}
	}
	return nil
}

// HasRole reports whether the user carries any of the given roles.
func (u *User) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
