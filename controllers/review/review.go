package review

import (
	"errors"

	"kos-booking/logger"
	"kos-booking/middleware"
	reviewService "kos-booking/services/review"
	"kos-booking/types"
	reviewTypes "kos-booking/types/review"
	"kos-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReviewController handles review-related HTTP requests
type ReviewController struct {
	DB      *gorm.DB
	Service *reviewService.Service
	Logger  *logger.AsyncLogger
}

// NewReviewController creates a new review controller
func NewReviewController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReviewController {
	return &ReviewController{
		DB:      db,
		Service: reviewService.NewService(db),
		Logger:  asyncLogger,
	}
}

// Store creates a review for a kos by the authenticated tenant
func (rc *ReviewController) Store(c *fiber.Ctx) error {
	var req reviewTypes.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	review, err := rc.Service.Create(ident, uint(req.KosID), req.Comment, req.Rating)
	if err != nil {
		return rc.mapServiceError(c, err, "create")
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Review has been created",
		Data:    review,
	})
}

// Update edits the caller's own review
func (rc *ReviewController) Update(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Review ID must be a positive number",
		})
	}

	var req reviewTypes.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	review, err := rc.Service.Update(ident, id, req.Comment, req.Rating)
	if err != nil {
		return rc.mapServiceError(c, err, "update")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Review has been updated",
		Data:    review,
	})
}

// Delete removes a review under the dual-rooted ownership rule
func (rc *ReviewController) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Review ID must be a positive number",
		})
	}

	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	if err := rc.Service.Delete(ident, id); err != nil {
		return rc.mapServiceError(c, err, "delete")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Review has been deleted",
	})
}

// Reply attaches the kos owner's reply to a review
func (rc *ReviewController) Reply(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Review ID must be a positive number",
		})
	}

	var req reviewTypes.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	review, err := rc.Service.Reply(ident, id, req.Reply)
	if err != nil {
		return rc.mapServiceError(c, err, "reply to")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reply has been added",
		Data:    review,
	})
}

// ListByKos returns a kos's reviews with the mean rating
func (rc *ReviewController) ListByKos(c *fiber.Ctx) error {
	kosID, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Kos ID must be a positive number",
		})
	}

	reviews, mean, err := rc.Service.ListByKos(kosID)
	if err != nil {
		logger.Error("Failed to retrieve reviews", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve reviews",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reviews retrieved successfully",
		Data: fiber.Map{
			"reviews":     reviews,
			"mean_rating": mean,
		},
	})
}

func (rc *ReviewController) mapServiceError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, reviewService.ErrKosNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Kos not found",
		})
	case errors.Is(err, reviewService.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Review not found",
		})
	case errors.Is(err, reviewService.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Not authorized to " + action + " this review",
		})
	default:
		logger.Error("Failed to "+action+" review", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
