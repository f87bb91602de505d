package booking

import (
	"time"

	bookingModel "kos-booking/models/booking"

	"github.com/jinzhu/now"
)

// Scope selects whose booking history is listed: bookings against an
// owner's kos units, or bookings created by a tenant. Exactly one field is
// set.
type Scope struct {
	OwnerID  uint
	TenantID uint
}

// TimeFilter narrows a history listing to a window over start_date.
// Precedence: Month+Year, then Start+End (inclusive), then Year alone, then
// no filtering.
type TimeFilter struct {
	Month int
	Year  int
	Start time.Time
	End   time.Time
}

// window resolves the filter into a half-open [from, to) interval plus an
// inclusive flag for the explicit-range form. ok is false when no time
// filtering applies.
func (f TimeFilter) window() (from, to time.Time, inclusive, ok bool) {
	switch {
	case f.Month != 0 && f.Year != 0:
		base := time.Date(f.Year, time.Month(f.Month), 15, 0, 0, 0, 0, time.UTC)
		from = now.With(base).BeginningOfMonth()
		return from, from.AddDate(0, 1, 0), false, true
	case !f.Start.IsZero() && !f.End.IsZero():
		return f.Start, f.End, true, true
	case f.Year != 0:
		base := time.Date(f.Year, time.June, 15, 0, 0, 0, 0, time.UTC)
		from = now.With(base).BeginningOfYear()
		return from, from.AddDate(1, 0, 0), false, true
	default:
		return time.Time{}, time.Time{}, false, false
	}
}

// List returns the scope's bookings within the filter window, newest first.
// Ties on created_at break on id so the order is stable for a given store
// state.
func (s *Service) List(scope Scope, filter TimeFilter) ([]bookingModel.Booking, error) {
	q := s.DB.Model(&bookingModel.Booking{}).
		Preload("Kos").Preload("User")

	if scope.OwnerID != 0 {
		q = q.Joins("JOIN kos ON kos.id = bookings.kos_id").
			Where("kos.owner_id = ?", scope.OwnerID)
	} else {
		q = q.Where("bookings.user_id = ?", scope.TenantID)
	}

	if from, to, inclusive, ok := filter.window(); ok {
		if inclusive {
			q = q.Where("bookings.start_date >= ? AND bookings.start_date <= ?", from, to)
		} else {
			q = q.Where("bookings.start_date >= ? AND bookings.start_date < ?", from, to)
		}
	}

	var bookings []bookingModel.Booking
	err := q.Order("bookings.created_at DESC").Order("bookings.id DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// StatusHistory returns the recorded status changes of a booking, oldest
// first, after the same tenant scoping as GetByID.
func (s *Service) StatusHistory(bookingID uint) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := s.DB.Where("booking_id = ?", bookingID).
		Order("created_at ASC").Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
