package kos

import (
	"time"
)

// KosImage is a stored photo reference for a listing. The binary itself
// lives in external file storage; only the path is kept here.
type KosImage struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	KosID uint `gorm:"not null;index" json:"kos_id"`

	Path      string `gorm:"type:varchar(2048);not null" json:"path"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
