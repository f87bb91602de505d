package booking

import (
	"errors"
	"strings"
	"time"

	bookingModel "kos-booking/models/booking"
	"kos-booking/utils"
)

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	KosID     int    `json:"kos_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Populated by Validate.
	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

// Validate checks the payload and parses the date fields. All violations are
// collected and joined into a single message.
func (r *CreateBookingRequest) Validate() error {
	var msgs []string

	if r.KosID <= 0 {
		msgs = append(msgs, "Kos ID is required and must be a positive number")
	}

	if r.StartDate == "" {
		msgs = append(msgs, "Start date is required")
	} else {
		start, err := utils.ParseISODate(r.StartDate)
		if err != nil {
			msgs = append(msgs, "Start date must be a valid ISO date")
		} else {
			r.ParsedStart = start
		}
	}

	if r.EndDate == "" {
		msgs = append(msgs, "End date is required")
	} else {
		end, err := utils.ParseISODate(r.EndDate)
		if err != nil {
			msgs = append(msgs, "End date must be a valid ISO date")
		} else {
			r.ParsedEnd = end
		}
	}

	if !r.ParsedStart.IsZero() && !r.ParsedEnd.IsZero() && !r.ParsedEnd.After(r.ParsedStart) {
		msgs = append(msgs, "End date must be after start date")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}

// UpdateBookingRequest is the payload for updating a booking. Every field is
// optional but at least one must be present.
type UpdateBookingRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

// Validate checks the payload and parses any date fields present.
func (r *UpdateBookingRequest) Validate() error {
	var msgs []string

	if r.StartDate == nil && r.EndDate == nil && r.Status == nil {
		return errors.New("At least one field must be provided for update")
	}

	if r.StartDate != nil {
		start, err := utils.ParseISODate(*r.StartDate)
		if err != nil {
			msgs = append(msgs, "Start date must be a valid ISO date")
		} else {
			r.ParsedStart = start
		}
	}

	if r.EndDate != nil {
		end, err := utils.ParseISODate(*r.EndDate)
		if err != nil {
			msgs = append(msgs, "End date must be a valid ISO date")
		} else {
			r.ParsedEnd = end
		}
	}

	if !r.ParsedStart.IsZero() && !r.ParsedEnd.IsZero() && !r.ParsedEnd.After(r.ParsedStart) {
		msgs = append(msgs, "End date must be after start date")
	}

	if r.Status != nil && !bookingModel.Status(*r.Status).IsValid() {
		msgs = append(msgs, "Status must be PENDING, ACCEPTED, REJECTED, or CANCELLED")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}

// HistoryQuery is the time filter for booking history listings. Precedence:
// month+year, then start+end date range, then year alone.
type HistoryQuery struct {
	Month     int    `query:"month"`
	Year      int    `query:"year"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

// Validate checks the filter combination. At least one of month, start date,
// or year must be supplied.
func (q *HistoryQuery) Validate() error {
	var msgs []string

	if q.Month == 0 && q.StartDate == "" && q.Year == 0 {
		return errors.New("At least one of month, start date, or year is required")
	}

	if q.Month != 0 && (q.Month < 1 || q.Month > 12) {
		msgs = append(msgs, "Month must be between 1 and 12")
	}
	if q.Month != 0 && q.Year == 0 {
		msgs = append(msgs, "Year is required when month is provided")
	}
	if q.Year < 0 {
		msgs = append(msgs, "Year must be a positive number")
	}

	if q.StartDate != "" {
		start, err := utils.ParseISODate(q.StartDate)
		if err != nil {
			msgs = append(msgs, "Start date must be a valid ISO date")
		} else {
			q.ParsedStart = start
		}
	}
	if q.EndDate != "" {
		end, err := utils.ParseISODate(q.EndDate)
		if err != nil {
			msgs = append(msgs, "End date must be a valid ISO date")
		} else {
			q.ParsedEnd = end
		}
	}
	if q.StartDate != "" && q.EndDate == "" {
		msgs = append(msgs, "End date is required when start date is provided")
	}
	if !q.ParsedStart.IsZero() && !q.ParsedEnd.IsZero() && q.ParsedEnd.Before(q.ParsedStart) {
		msgs = append(msgs, "End date must not be before start date")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}
