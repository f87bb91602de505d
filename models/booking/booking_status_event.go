package booking

import (
	"time"
)

// BookingStatusEvent records one status change of a booking, written in the
// same transaction as the change itself.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for booking relationship
	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"booking"`

	Status    Status    `gorm:"type:varchar(20);not null" json:"status"`
	ChangedBy uint      `gorm:"not null" json:"changed_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
