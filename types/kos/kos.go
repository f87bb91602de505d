package kos

import (
	"errors"
	"strings"

	"kos-booking/constants"
)

// CreateKosRequest is the payload for creating a listing.
type CreateKosRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Description   string `json:"description"`
	PricePerMonth int    `json:"price_per_month"`
	Gender        string `json:"gender"`
}

func (r CreateKosRequest) Validate() error {
	var msgs []string

	if strings.TrimSpace(r.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if strings.TrimSpace(r.Address) == "" {
		msgs = append(msgs, "Address is required")
	}
	if r.PricePerMonth <= 0 {
		msgs = append(msgs, "Price per month must be a positive number")
	}
	if !constants.IsValidGender(r.Gender) {
		msgs = append(msgs, "Gender must be MALE, FEMALE, or ALL")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}

// UpdateKosRequest is the payload for updating a listing. Fields are
// optional; at least one must be present.
type UpdateKosRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	Description   *string `json:"description"`
	PricePerMonth *int    `json:"price_per_month"`
	Gender        *string `json:"gender"`
}

func (r UpdateKosRequest) Validate() error {
	var msgs []string

	if r.Name == nil && r.Address == nil && r.Description == nil &&
		r.PricePerMonth == nil && r.Gender == nil {
		return errors.New("At least one field must be provided for update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		msgs = append(msgs, "Name must not be empty")
	}
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		msgs = append(msgs, "Address must not be empty")
	}
	if r.PricePerMonth != nil && *r.PricePerMonth <= 0 {
		msgs = append(msgs, "Price per month must be a positive number")
	}
	if r.Gender != nil && !constants.IsValidGender(*r.Gender) {
		msgs = append(msgs, "Gender must be MALE, FEMALE, or ALL")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}

// FacilityRequest is the payload for adding a facility tag.
type FacilityRequest struct {
	Name string `json:"name"`
}

func (r FacilityRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("Facility name is required")
	}
	return nil
}
