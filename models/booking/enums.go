package booking

// Status is the approval state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// OwnerCanTransition reports whether an owner-requested status change is
// allowed from the current state. Owners may only move a booking out of
// PENDING; tenant cancellation is not gated by this.
func (s Status) OwnerCanTransition() bool {
	return s == StatusPending
}

// GetAllStatuses returns every valid booking status.
func GetAllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAccepted,
		StatusRejected,
		StatusCancelled,
	}
}
