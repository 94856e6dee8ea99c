package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListItem joins a list and an item, carrying the quantity the user wants
// and whether the entry has been ticked off. The same item may appear on a
// list more than once; the pairing is deliberately not unique.
type ListItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	ListID    uuid.UUID `json:"list_id" gorm:"type:uuid;index;not null"`
	ItemID    uuid.UUID `json:"item_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	List List `json:"-" gorm:"foreignKey:ListID"`
	Item Item `json:"-" gorm:"foreignKey:ItemID"`
}

func (li *ListItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}
