package routes

import (
	"kos-booking/constants"
	"kos-booking/controllers/booking"
	"kos-booking/controllers/kos"
	"kos-booking/controllers/review"
	"kos-booking/controllers/user"
	"kos-booking/logger"
	"kos-booking/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	bookingController := booking.NewBookingController(db, asyncLogger)
	kosController := kos.NewKosController(db, asyncLogger)
	reviewController := review.NewReviewController(db, asyncLogger)
	userController := user.NewUserController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	api := app.Group("/api")

	/*=============================================================================
	| Profile Routes
	===============================================================================*/
	profile := api.Group("/profile").Use(middleware.RequireRoles())
	profile.Get("/", userController.Profile)
	profile.Put("/", userController.UpdateProfile)

	/*=============================================================================
	| Kos Routes
	===============================================================================*/
	kosGroup := api.Group("/kos")

	kosGroup.Get("/", kosController.Index)
	kosGroup.Get("/:id", kosController.Show)
	kosGroup.Get("/:id/reviews", reviewController.ListByKos)

	kosGroup.Post("/", middleware.RequireRoles(constants.RoleOwner), kosController.Store)
	kosGroup.Put("/:id", middleware.RequireRoles(constants.RoleOwner), kosController.Update)
	kosGroup.Delete("/:id", middleware.RequireRoles(constants.RoleOwner), kosController.Delete)
	kosGroup.Post("/:id/facilities", middleware.RequireRoles(constants.RoleOwner), kosController.AddFacility)
	kosGroup.Delete("/:id/facilities/:facilityId", middleware.RequireRoles(constants.RoleOwner), kosController.DeleteFacility)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings")

	bookingGroup.Post("/",
		middleware.RequireRoles(constants.RoleSociety),
		middleware.Idempotency(db),
		bookingController.Store)

	bookingGroup.Put("/:id",
		middleware.RequireRoles(constants.RoleSociety, constants.RoleOwner),
		middleware.Idempotency(db),
		bookingController.Update)

	bookingGroup.Delete("/:id",
		middleware.RequireRoles(constants.RoleSociety, constants.RoleOwner),
		middleware.Idempotency(db),
		bookingController.Delete)

	// Registered before "/:id" so the literal path wins.
	bookingGroup.Get("/my-bookings",
		middleware.RequireRoles(constants.RoleSociety),
		bookingController.MyBookings)

	bookingGroup.Get("/",
		middleware.RequireRoles(constants.RoleOwner),
		bookingController.OwnerHistory)

	bookingGroup.Get("/:id",
		middleware.RequireRoles(constants.RoleSociety),
		bookingController.Show)

	bookingGroup.Get("/:id/nota",
		middleware.RequireRoles(constants.RoleSociety),
		bookingController.Nota)

	bookingGroup.Get("/:id/history",
		middleware.RequireRoles(constants.RoleSociety),
		bookingController.StatusHistory)

	/*=============================================================================
	| Review Routes
	===============================================================================*/
	reviewGroup := api.Group("/reviews")

	reviewGroup.Post("/", middleware.RequireRoles(constants.RoleSociety), reviewController.Store)
	reviewGroup.Put("/:id", middleware.RequireRoles(constants.RoleSociety), reviewController.Update)
	reviewGroup.Delete("/:id", middleware.RequireRoles(constants.RoleSociety, constants.RoleOwner), reviewController.Delete)
	reviewGroup.Post("/:id/reply", middleware.RequireRoles(constants.RoleOwner), reviewController.Reply)
}
