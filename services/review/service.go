package review

import (
	"errors"
	"fmt"

	"kos-booking/logger"
	kosModel "kos-booking/models/kos"
	reviewModel "kos-booking/models/review"
	"kos-booking/services/authz"
	"kos-booking/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrKosNotFound = errors.New("kos not found")
	ErrNotFound    = errors.New("review not found")
	ErrForbidden   = errors.New("not authorized for this review")
)

// Service manages kos reviews and owner replies.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create inserts a review by the given tenant against an existing kos.
func (s *Service) Create(ident types.Identity, kosID uint, comment string, rating int) (*reviewModel.Review, error) {
	var k kosModel.Kos
	if err := s.DB.First(&k, kosID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKosNotFound
		}
		return nil, err
	}

	r := reviewModel.Review{
		Uuid:    uuid.NewString(),
		KosID:   kosID,
		UserID:  ident.ID,
		Comment: comment,
		Rating:  rating,
	}
	if err := s.DB.Create(&r).Error; err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Review added for kos ID %d by user ID %d", kosID, ident.ID))
	return s.load(r.ID)
}

// Update edits a review's comment or rating. Only the tenant who wrote it
// may edit; the kos owner's transitive access covers Reply, not edits.
func (s *Service) Update(ident types.Identity, id uint, comment *string, rating *int) (*reviewModel.Review, error) {
	var r reviewModel.Review
	if err := s.DB.Preload("Kos").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.UserID != ident.ID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if comment != nil {
		updates["comment"] = *comment
	}
	if rating != nil {
		updates["rating"] = *rating
	}
	if err := s.DB.Model(&r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.load(r.ID)
}

// Delete removes a review under the dual-rooted rule: the writing tenant or
// the kos owner may delete it.
func (s *Service) Delete(ident types.Identity, id uint) error {
	var r reviewModel.Review
	if err := s.DB.Preload("Kos").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if allowed, reason := authz.CanAccessReview(ident, r.UserID, &r.Kos); !allowed {
		logger.Warning(fmt.Sprintf("Delete denied for review ID %d, user ID %d: %s", id, ident.ID, reason))
		return ErrForbidden
	}

	return s.DB.Delete(&r).Error
}

// Reply attaches the kos owner's reply to a review.
func (s *Service) Reply(ident types.Identity, id uint, reply string) (*reviewModel.Review, error) {
	var r reviewModel.Review
	if err := s.DB.Preload("Kos").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.Kos.OwnerID != ident.ID {
		return nil, ErrForbidden
	}

	if err := s.DB.Model(&r).Update("owner_reply", reply).Error; err != nil {
		return nil, err
	}
	return s.load(r.ID)
}

// ListByKos returns a kos's reviews, newest first, with the arithmetic mean
// rating.
func (s *Service) ListByKos(kosID uint) ([]reviewModel.Review, float64, error) {
	var reviews []reviewModel.Review
	err := s.DB.Where("kos_id = ?", kosID).
		Preload("User").
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	var mean float64
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		mean = float64(sum) / float64(len(reviews))
	}
	return reviews, mean, nil
}

func (s *Service) load(id uint) (*reviewModel.Review, error) {
	var r reviewModel.Review
	if err := s.DB.Preload("Kos").Preload("User").First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
