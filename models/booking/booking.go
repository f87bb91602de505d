package booking

import (
	"time"

	"kos-booking/models/kos"
	"kos-booking/models/user"
)

// Booking is a reservation request against a kos for a date range.
// Ownership is dual-rooted: the tenant (UserID) owns it directly, the kos
// owner owns it transitively through KosID.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Uuid is the client-facing correlation identifier, decoupled from the
	// sequential primary key.
	Uuid string `gorm:"type:varchar(255);not null;unique" json:"uuid"`

	KosID uint    `gorm:"not null;index" json:"kos_id"`
	Kos   kos.Kos `gorm:"foreignKey:KosID" json:"kos"`

	// Foreign key for the tenant who created the booking
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	// EndDate is always strictly after StartDate.
	StartDate time.Time `gorm:"not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	Status Status `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
