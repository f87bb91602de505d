package kos

import (
	"errors"
	"strconv"
	"strings"

	"kos-booking/constants"
	"kos-booking/logger"
	"kos-booking/middleware"
	kosModel "kos-booking/models/kos"
	"kos-booking/types"
	kosTypes "kos-booking/types/kos"
	"kos-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KosController handles listing-related HTTP requests
type KosController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewKosController creates a new kos controller
func NewKosController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *KosController {
	return &KosController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store creates a new listing owned by the authenticated owner
func (kc *KosController) Store(c *fiber.Ctx) error {
	var req kosTypes.CreateKosRequest
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

	k := kosModel.Kos{
		Uuid:          uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		PricePerMonth: req.PricePerMonth,
		Gender:        req.Gender,
		OwnerID:       ident.ID,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		k.Description = &desc
	}

	if err := kc.DB.Create(&k).Error; err != nil {
		logger.Error("Failed to create kos", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create kos",
		})
	}

	logger.Success("Kos created: " + k.Name)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Kos has been created",
		Data:    k,
	})
}

// Index lists all kos with optional search filters
func (kc *KosController) Index(c *fiber.Ctx) error {
	q := kc.DB.Model(&kosModel.Kos{}).
		Preload("Images").Preload("Facilities").Preload("Owner")

	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if minPrice, err := strconv.Atoi(c.Query("min_price")); err == nil && minPrice > 0 {
		q = q.Where("price_per_month >= ?", minPrice)
	}
	if maxPrice, err := strconv.Atoi(c.Query("max_price")); err == nil && maxPrice > 0 {
		q = q.Where("price_per_month <= ?", maxPrice)
	}
	if address := c.Query("address"); address != "" {
		q = q.Where("LOWER(address) LIKE ?", "%"+strings.ToLower(address)+"%")
	}

	if gender := c.Query("gender"); gender != "" {
		var valid []string
		for _, g := range strings.Split(strings.ToUpper(gender), ",") {
			if constants.IsValidGender(g) {
				valid = append(valid, g)
			}
		}
		if len(valid) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid gender filter value",
			})
		}
		q = q.Where("gender IN ?", valid)
	}

	var listings []kosModel.Kos
	if err := q.Order("created_at DESC").Find(&listings).Error; err != nil {
		logger.Error("Failed to retrieve kos list", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve kos list",
		})
	}

	// Minimum mean rating filter runs over the fetched page; review volume
	// per kos is small.
	if minRating, err := strconv.ParseFloat(c.Query("rating"), 64); err == nil && minRating > 0 {
		filtered, err := kc.filterByRating(listings, minRating)
		if err != nil {
			logger.Error("Failed to apply rating filter", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to retrieve kos list",
			})
		}
		listings = filtered
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Kos list retrieved successfully",
		Data:    listings,
	})
}

func (kc *KosController) filterByRating(listings []kosModel.Kos, minRating float64) ([]kosModel.Kos, error) {
	type kosRating struct {
		KosID uint
		Mean  float64
	}
	var ratings []kosRating
	err := kc.DB.Table("reviews").
		Select("kos_id AS kos_id, AVG(rating) AS mean").
		Group("kos_id").
		Scan(&ratings).Error
	if err != nil {
		return nil, err
	}

	means := make(map[uint]float64, len(ratings))
	for _, r := range ratings {
		means[r.KosID] = r.Mean
	}

	filtered := make([]kosModel.Kos, 0, len(listings))
	for _, k := range listings {
		if means[k.ID] >= minRating {
			filtered = append(filtered, k)
		}
	}
	return filtered, nil
}

// Show returns one listing with its images, facilities and owner
func (kc *KosController) Show(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Kos ID must be a positive number",
		})
	}

	var k kosModel.Kos
	err = kc.DB.Preload("Images").Preload("Facilities").Preload("Owner").First(&k, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Kos not found",
			})
		}
		logger.Error("Failed to retrieve kos", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Kos retrieved successfully",
		Data:    k,
	})
}

// Update edits a listing; only its owner may do so
func (kc *KosController) Update(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Kos ID must be a positive number",
		})
	}

	var req kosTypes.UpdateKosRequest
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

	k, ferr := kc.findOwned(c, id, ident.ID)
	if k == nil {
		return ferr
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.PricePerMonth != nil {
		updates["price_per_month"] = *req.PricePerMonth
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}

	if err := kc.DB.Model(k).Updates(updates).Error; err != nil {
		logger.Error("Failed to update kos", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update kos",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Kos has been updated",
		Data:    k,
	})
}

// Delete removes a listing and its dependent images and facilities
func (kc *KosController) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Kos ID must be a positive number",
		})
	}

	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	k, ferr := kc.findOwned(c, id, ident.ID)
	if k == nil {
		return ferr
	}

	err = kc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kos_id = ?", k.ID).Delete(&kosModel.KosImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kos_id = ?", k.ID).Delete(&kosModel.KosFacility{}).Error; err != nil {
			return err
		}
		return tx.Delete(k).Error
	})
	if err != nil {
		logger.Error("Failed to delete kos", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete kos",
		})
	}

	logger.Success("Kos deleted: " + k.Name)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Kos has been deleted",
	})
}

// AddFacility attaches a facility tag to a listing owned by the caller
func (kc *KosController) AddFacility(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Kos ID must be a positive number",
		})
	}

	var req kosTypes.FacilityRequest
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

	k, ferr := kc.findOwned(c, id, ident.ID)
	if k == nil {
		return ferr
	}

	facility := kosModel.KosFacility{
		KosID: k.ID,
		Name:  strings.TrimSpace(req.Name),
	}
	if err := kc.DB.Create(&facility).Error; err != nil {
		logger.Error("Failed to add facility", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to add facility",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Facility has been added",
		Data:    facility,
	})
}

// DeleteFacility removes a facility tag from a listing owned by the caller
func (kc *KosController) DeleteFacility(c *fiber.Ctx) error {
	id, err := utils.ParamUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Kos ID must be a positive number",
		})
	}
	facilityID, err := utils.ParamUint(c.Params("facilityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Facility ID must be a positive number",
		})
	}

	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	k, ferr := kc.findOwned(c, id, ident.ID)
	if k == nil {
		return ferr
	}

	result := kc.DB.Where("id = ? AND kos_id = ?", facilityID, k.ID).Delete(&kosModel.KosFacility{})
	if result.Error != nil {
		logger.Error("Failed to delete facility", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete facility",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Facility not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Facility has been deleted",
	})
}

// findOwned loads a kos and writes the error response itself when the kos is
// absent or not owned by ownerID. A nil kos means the response is already
// sent.
func (kc *KosController) findOwned(c *fiber.Ctx, id, ownerID uint) (*kosModel.Kos, error) {
	var k kosModel.Kos
	if err := kc.DB.First(&k, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Kos not found",
			})
		}
		logger.Error("Failed to find kos", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	if k.OwnerID != ownerID {
		return nil, c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Not authorized to manage this kos",
		})
	}
	return &k, nil
}
