package kos

import (
	"time"

	"kos-booking/models/user"
)

// Kos is a rentable boarding-house listing.
type Kos struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid string `gorm:"type:varchar(255);not null;unique" json:"uuid"`

	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	Address       string  `gorm:"type:text;not null" json:"address"`
	Description   *string `gorm:"type:text" json:"description,omitempty"`
	PricePerMonth int     `gorm:"not null" json:"price_per_month"`

	// Gender restriction: MALE, FEMALE or ALL (constants package).
	Gender string `gorm:"type:varchar(10);not null" json:"gender"`

	// Foreign key for the owning user
	OwnerID uint      `gorm:"not null;index" json:"owner_id"`
	Owner   user.User `gorm:"foreignKey:OwnerID" json:"owner"`

	Images     []KosImage    `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Facilities []KosFacility `gorm:"foreignKey:KosID;constraint:OnDelete:CASCADE" json:"facilities,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Kos model ("kos" does not pluralize).
func (Kos) TableName() string {
	return "kos"
}
