package idempotency

import (
	"time"
)

// IdempotencyKey caches the response of a completed mutating request so a
// duplicate submission with the same Idempotency-Key header replays the
// stored response instead of re-running the operation. Rows expire by TTL
// and are reaped opportunistically on lookup.
type IdempotencyKey struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Key    string `gorm:"type:varchar(255);not null;unique" json:"key"`
	Method string `gorm:"type:varchar(10);not null" json:"method"`
	Path   string `gorm:"type:text;not null" json:"path"`

	StatusCode   int    `gorm:"type:int;not null" json:"status_code"`
	ResponseBody string `gorm:"type:text" json:"response_body"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}
