package user

import (
	"time"
)

// User is an identity record. Credential handling lives with the external
// auth service; the password hash is stored opaquely and never serialized.
type User struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid     string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"`
	Phone    *string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	// Role is either OWNER or SOCIETY (constants package).
	Role string `gorm:"type:varchar(20);not null" json:"role"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
