package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateBookingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateBookingRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateBookingRequest{KosID: 1, StartDate: "2025-03-01", EndDate: "2025-04-01"},
		},
		{
			name: "valid RFC3339",
			req:  CreateBookingRequest{KosID: 1, StartDate: "2025-03-01T00:00:00Z", EndDate: "2025-04-01T00:00:00Z"},
		},
		{
			name:    "missing everything",
			req:     CreateBookingRequest{},
			wantErr: "Kos ID is required and must be a positive number, Start date is required, End date is required",
		},
		{
			name:    "bad start date",
			req:     CreateBookingRequest{KosID: 1, StartDate: "not-a-date", EndDate: "2025-04-01"},
			wantErr: "Start date must be a valid ISO date",
		},
		{
			name:    "end equals start",
			req:     CreateBookingRequest{KosID: 1, StartDate: "2025-03-01", EndDate: "2025-03-01"},
			wantErr: "End date must be after start date",
		},
		{
			name:    "end before start",
			req:     CreateBookingRequest{KosID: 1, StartDate: "2025-04-01", EndDate: "2025-03-01"},
			wantErr: "End date must be after start date",
		},
		{
			name:    "negative kos id",
			req:     CreateBookingRequest{KosID: -3, StartDate: "2025-03-01", EndDate: "2025-04-01"},
			wantErr: "Kos ID is required and must be a positive number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.False(t, tt.req.ParsedStart.IsZero())
				assert.False(t, tt.req.ParsedEnd.IsZero())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateBookingRequestParsesUTC(t *testing.T) {
	req := CreateBookingRequest{KosID: 1, StartDate: "2025-03-01", EndDate: "2025-04-01"}
	require.NoError(t, req.Validate())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), req.ParsedStart)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), req.ParsedEnd)
}

func TestUpdateBookingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateBookingRequest
		wantErr string
	}{
		{
			name: "status only",
			req:  UpdateBookingRequest{Status: strPtr("ACCEPTED")},
		},
		{
			name: "dates only",
			req:  UpdateBookingRequest{StartDate: strPtr("2025-03-01"), EndDate: strPtr("2025-04-01")},
		},
		{
			name: "start date alone",
			req:  UpdateBookingRequest{StartDate: strPtr("2025-03-01")},
		},
		{
			name:    "no fields",
			req:     UpdateBookingRequest{},
			wantErr: "At least one field must be provided for update",
		},
		{
			name:    "invalid status",
			req:     UpdateBookingRequest{Status: strPtr("DONE")},
			wantErr: "Status must be PENDING, ACCEPTED, REJECTED, or CANCELLED",
		},
		{
			name:    "bad end date",
			req:     UpdateBookingRequest{EndDate: strPtr("01/04/2025")},
			wantErr: "End date must be a valid ISO date",
		},
		{
			name:    "both dates reversed",
			req:     UpdateBookingRequest{StartDate: strPtr("2025-04-01"), EndDate: strPtr("2025-03-01")},
			wantErr: "End date must be after start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHistoryQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       HistoryQuery
		wantErr string
	}{
		{
			name: "month and year",
			q:    HistoryQuery{Month: 3, Year: 2025},
		},
		{
			name: "year alone",
			q:    HistoryQuery{Year: 2025},
		},
		{
			name: "explicit range",
			q:    HistoryQuery{StartDate: "2025-03-01", EndDate: "2025-03-31"},
		},
		{
			name: "single day range",
			q:    HistoryQuery{StartDate: "2025-03-01", EndDate: "2025-03-01"},
		},
		{
			name:    "empty",
			q:       HistoryQuery{},
			wantErr: "At least one of month, start date, or year is required",
		},
		{
			name:    "month without year",
			q:       HistoryQuery{Month: 3},
			wantErr: "Year is required when month is provided",
		},
		{
			name:    "month out of range",
			q:       HistoryQuery{Month: 13, Year: 2025},
			wantErr: "Month must be between 1 and 12",
		},
		{
			name:    "start without end",
			q:       HistoryQuery{StartDate: "2025-03-01"},
			wantErr: "End date is required when start date is provided",
		},
		{
			name:    "end before start",
			q:       HistoryQuery{StartDate: "2025-03-31", EndDate: "2025-03-01"},
			wantErr: "End date must not be before start date",
		},
		{
			name:    "bad start date",
			q:       HistoryQuery{StartDate: "soon", EndDate: "2025-03-31"},
			wantErr: "Start date must be a valid ISO date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
