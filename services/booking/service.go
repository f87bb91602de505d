package booking

import (
	"errors"
	"fmt"
	"time"

	"kos-booking/constants"
	"kos-booking/logger"
	bookingModel "kos-booking/models/booking"
	kosModel "kos-booking/models/kos"
	"kos-booking/services/authz"
	"kos-booking/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Engine-level failures, mapped onto HTTP statuses by the controller.
var (
	ErrKosNotFound      = errors.New("kos not found")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("not authorized for this booking")
	ErrInvalidState     = errors.New("only PENDING bookings may transition")
	ErrInvalidRange     = errors.New("end date must be after start date")
	ErrNoFieldsToUpdate = errors.New("no valid fields provided for update")
)

// Service is the booking lifecycle and history engine.
type Service struct {
	DB *gorm.DB
}

// NewService creates a booking service on top of the given store.
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create inserts a new PENDING booking for the given tenant. The caller
// boundary has already enforced the SOCIETY role; kos existence and date
// ordering are re-checked here against the store.
func (s *Service) Create(ident types.Identity, kosID uint, start, end time.Time) (*bookingModel.Booking, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	var k kosModel.Kos
	if err := s.DB.First(&k, kosID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKosNotFound
		}
		return nil, err
	}

	b := bookingModel.Booking{
		Uuid:      uuid.NewString(),
		KosID:     kosID,
		UserID:    ident.ID,
		StartDate: start,
		EndDate:   end,
		Status:    bookingModel.StatusPending,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		event := bookingModel.BookingStatusEvent{
			BookingID: b.ID,
			Status:    bookingModel.StatusPending,
			ChangedBy: ident.ID,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Booking created for kos ID %d by user ID %d", kosID, ident.ID))
	return s.load(b.ID)
}

// UpdateInput carries the optional fields of an update request. Nil means
// the field was not supplied.
type UpdateInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *bookingModel.Status
}

// Update applies role-filtered field changes to a booking. Owners may change
// status only while the stored status is PENDING; tenants may always set
// CANCELLED, and any other tenant-requested status is dropped without error.
func (s *Service) Update(ident types.Identity, id uint, in UpdateInput) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.Preload("Kos").First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if allowed, reason := authz.CanAccessBooking(ident, &b, &b.Kos); !allowed {
		logger.Warning(fmt.Sprintf("Update denied for booking ID %d, user ID %d: %s", id, ident.ID, reason))
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}

	newStart := b.StartDate
	newEnd := b.EndDate
	if in.StartDate != nil {
		newStart = *in.StartDate
		updates["start_date"] = newStart
	}
	if in.EndDate != nil {
		newEnd = *in.EndDate
		updates["end_date"] = newEnd
	}
	// The ordering invariant must hold against the merged record, not just
	// the supplied pair.
	if (in.StartDate != nil || in.EndDate != nil) && !newEnd.After(newStart) {
		return nil, ErrInvalidRange
	}

	var statusEvent *bookingModel.BookingStatusEvent
	if in.Status != nil {
		switch ident.Role {
		case constants.RoleOwner:
			if !b.Status.OwnerCanTransition() {
				return nil, ErrInvalidState
			}
			updates["status"] = *in.Status
		case constants.RoleSociety:
			// Tenant-initiated cancellation is never gated by the current
			// status; every other tenant-requested status is ignored.
			if *in.Status == bookingModel.StatusCancelled {
				updates["status"] = bookingModel.StatusCancelled
			}
		}
		if st, ok := updates["status"]; ok {
			statusEvent = &bookingModel.BookingStatusEvent{
				BookingID: b.ID,
				Status:    st.(bookingModel.Status),
				ChangedBy: ident.ID,
			}
		}
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&b).Updates(updates).Error; err != nil {
			return err
		}
		if statusEvent != nil {
			return tx.Create(statusEvent).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Booking ID %d updated by user ID %d", id, ident.ID))
	return s.load(b.ID)
}

// Delete removes a booking after the same ownership gate as Update.
func (s *Service) Delete(ident types.Identity, id uint) error {
	var b bookingModel.Booking
	if err := s.DB.Preload("Kos").First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if allowed, reason := authz.CanAccessBooking(ident, &b, &b.Kos); !allowed {
		logger.Warning(fmt.Sprintf("Delete denied for booking ID %d, user ID %d: %s", id, ident.ID, reason))
		return ErrForbidden
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", b.ID).Delete(&bookingModel.BookingStatusEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
	if err != nil {
		return err
	}

	logger.Success(fmt.Sprintf("Booking ID %d deleted by user ID %d", id, ident.ID))
	return nil
}

// GetByID returns the booking with its kos and tenant joined, scoped to the
// requesting tenant. A booking that exists but belongs to someone else reads
// as not found so its existence is not leaked.
func (s *Service) GetByID(ident types.Identity, id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.DB.Where("id = ? AND user_id = ?", id, ident.ID).
		Preload("Kos").Preload("Kos.Owner").Preload("User").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *Service) load(id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.DB.Preload("Kos").Preload("Kos.Owner").Preload("User").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
