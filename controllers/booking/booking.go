package booking

import (
	"errors"
	"time"

	"kos-booking/logger"
	bookingModel "kos-booking/models/booking"
	bookingService "kos-booking/services/booking"
	notaService "kos-booking/services/nota"
	"kos-booking/types"
	bookingTypes "kos-booking/types/booking"
	"kos-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB      *gorm.DB
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:      db,
		Service: bookingService.NewService(db),
		Logger:  asyncLogger,
	}
}

// Store creates a new PENDING booking for the authenticated tenant
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	booking, err := bc.Service.Create(ident, uint(req.KosID), req.ParsedStart, req.ParsedEnd)
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrKosNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Kos not found",
			})
		case errors.Is(err, bookingService.ErrInvalidRange):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "End date must be after start date",
			})
		default:
			logger.Error("Failed to create booking", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to create booking",
			})
		}
	}

	resp := c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking has been created",
		Data:    booking,
	})
	bc.audit(c)
	return resp
}

// Update applies role-filtered field changes to a booking
func (bc *BookingController) Update(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID must be a positive number",
		})
	}

	var req bookingTypes.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	in := bookingService.UpdateInput{}
	if req.StartDate != nil {
		start := req.ParsedStart
		in.StartDate = &start
	}
	if req.EndDate != nil {
		end := req.ParsedEnd
		in.EndDate = &end
	}
	if req.Status != nil {
		status := bookingModel.Status(*req.Status)
		in.Status = &status
	}

	booking, err := bc.Service.Update(ident, id, in)
	if err != nil {
		return bc.mapServiceError(c, err, "update")
	}

	resp := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking has been updated",
		Data:    booking,
	})
	bc.audit(c)
	return resp
}

// Delete removes a booking owned by the caller
func (bc *BookingController) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID must be a positive number",
		})
	}

	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}

	if err := bc.Service.Delete(ident, id); err != nil {
		return bc.mapServiceError(c, err, "delete")
	}

	resp := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking has been deleted",
	})
	bc.audit(c)
	return resp
}

// Show returns a tenant's booking with its kos and owner joined
func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID must be a positive number",
		})
	}

	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}

	booking, err := bc.Service.GetByID(ident, id)
	if err != nil {
		return bc.mapServiceError(c, err, "retrieve")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking details retrieved successfully",
		Data:    booking,
	})
}

// OwnerHistory lists bookings against the owner's kos units within the
// requested time window
func (bc *BookingController) OwnerHistory(c *fiber.Ctx) error {
	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	return bc.history(c, bookingService.Scope{OwnerID: ident.ID})
}

// MyBookings lists the tenant's own bookings within the requested time
// window
func (bc *BookingController) MyBookings(c *fiber.Ctx) error {
	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	return bc.history(c, bookingService.Scope{TenantID: ident.ID})
}

func (bc *BookingController) history(c *fiber.Ctx, scope bookingService.Scope) error {
	var query bookingTypes.HistoryQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid query parameters",
		})
	}

	if err := query.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	bookings, err := bc.Service.List(scope, bookingService.TimeFilter{
		Month: query.Month,
		Year:  query.Year,
		Start: query.ParsedStart,
		End:   query.ParsedEnd,
	})
	if err != nil {
		logger.Error("Failed to retrieve booking history", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve booking history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking history retrieved successfully",
		Data:    bookings,
	})
}

// Nota renders the printable receipt for a tenant's booking
func (bc *BookingController) Nota(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID must be a positive number",
		})
	}

	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}

	booking, err := bc.Service.GetByID(ident, id)
	if err != nil {
		return bc.mapServiceError(c, err, "retrieve")
	}

	document := notaService.Render(booking, time.Now())
	c.Set("Content-Type", fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(document)
}

// StatusHistory returns the recorded status changes of a tenant's booking
func (bc *BookingController) StatusHistory(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Booking ID must be a positive number",
		})
	}

	ident, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}

	// Tenant scoping first so a foreign booking reads as not found.
	if _, err := bc.Service.GetByID(ident, id); err != nil {
		return bc.mapServiceError(c, err, "retrieve")
	}

	events, err := bc.Service.StatusHistory(id)
	if err != nil {
		logger.Error("Failed to retrieve status history", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve status history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status history retrieved successfully",
		Data:    events,
	})
}

func (bc *BookingController) mapServiceError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, bookingService.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Booking not found",
		})
	case errors.Is(err, bookingService.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Not authorized to " + action + " this booking",
		})
	case errors.Is(err, bookingService.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Only PENDING bookings may transition",
		})
	case errors.Is(err, bookingService.ErrInvalidRange):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "End date must be after start date",
		})
	case errors.Is(err, bookingService.ErrNoFieldsToUpdate):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "No valid fields provided for update",
		})
	default:
		logger.Error("Failed to "+action+" booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
