package review

import (
	"time"

	"kos-booking/models/kos"
	"kos-booking/models/user"
)

// Review is a tenant's free-text rating of a kos. The listing owner may
// attach a single reply.
type Review struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid string `gorm:"type:varchar(255);not null;unique" json:"uuid"`

	KosID uint    `gorm:"not null;index" json:"kos_id"`
	Kos   kos.Kos `gorm:"foreignKey:KosID" json:"kos"`

	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	Comment string `gorm:"type:text;not null" json:"comment"`
	// Rating is 1..5 inclusive.
	Rating int `gorm:"not null" json:"rating"`

	OwnerReply *string `gorm:"type:text" json:"owner_reply,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
