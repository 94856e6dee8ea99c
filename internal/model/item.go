package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a reusable catalog entry (e.g. a grocery product) owned by
// exactly one user. Ownership is set on create and never changes.
type Item struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	QuantityUnits *string   `json:"quantityUnits,omitempty" gorm:"type:varchar(50)"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
