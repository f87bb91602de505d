package kos

import (
	"time"
)

// KosFacility is a free-form facility tag on a listing (wifi, parking, ...).
type KosFacility struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	KosID uint `gorm:"not null;index" json:"kos_id"`

	Name string `gorm:"type:varchar(255);not null" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
