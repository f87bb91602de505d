package review

import (
	"errors"
	"strings"
)

// CreateReviewRequest is the payload for reviewing a kos.
type CreateReviewRequest struct {
	KosID   int    `json:"kos_id"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func (r CreateReviewRequest) Validate() error {
	var msgs []string

	if r.KosID <= 0 {
		msgs = append(msgs, "Kos ID is required and must be a positive number")
	}
	if strings.TrimSpace(r.Comment) == "" {
		msgs = append(msgs, "Comment is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		msgs = append(msgs, "Rating must be between 1 and 5")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}

// UpdateReviewRequest is the payload for editing an existing review.
type UpdateReviewRequest struct {
	Comment *string `json:"comment"`
	Rating  *int    `json:"rating"`
}

func (r UpdateReviewRequest) Validate() error {
	var msgs []string

	if r.Comment == nil && r.Rating == nil {
		return errors.New("At least one field must be provided for update")
	}
	if r.Comment != nil && strings.TrimSpace(*r.Comment) == "" {
		msgs = append(msgs, "Comment must not be empty")
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		msgs = append(msgs, "Rating must be between 1 and 5")
	}

	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, ", "))
	}
	return nil
}

// ReplyRequest is the payload for an owner reply on a review.
type ReplyRequest struct {
	Reply string `json:"reply"`
}

func (r ReplyRequest) Validate() error {
	if strings.TrimSpace(r.Reply) == "" {
		return errors.New("Reply is required")
	}
	return nil
}
