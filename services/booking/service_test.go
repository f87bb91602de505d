package booking

import (
	"testing"
	"time"

	"kos-booking/constants"
	"kos-booking/database"
	bookingModel "kos-booking/models/booking"
	kosModel "kos-booking/models/kos"
	userModel "kos-booking/models/user"
	"kos-booking/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) userModel.User {
	t.Helper()

	u := userModel.User{
		Uuid:     uuid.NewString(),
		Name:     "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedKos(t *testing.T, db *gorm.DB, ownerID uint) kosModel.Kos {
	t.Helper()

	k := kosModel.Kos{
		Uuid:          uuid.NewString(),
		Name:          "Kos Melati",
		Address:       "Jl. Kenanga 12, Bandung",
		PricePerMonth: 1250000,
		Gender:        constants.GenderAll,
		OwnerID:       ownerID,
	}
	require.NoError(t, db.Create(&k).Error)
	return k
}

func ident(u userModel.User) types.Identity {
	return types.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusPending, b.Status)
	require.NotEmpty(t, b.Uuid)
	require.Equal(t, tenant.ID, b.UserID)
	require.Equal(t, k.ID, b.KosID)
	require.True(t, b.EndDate.After(b.StartDate))

	// The initial PENDING status is recorded as an event.
	events, err := svc.StatusHistory(b.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, bookingModel.StatusPending, events[0].Status)
}

func TestCreateInvalidRange(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	_, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 10), date(2024, 5, 10))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Create(ident(tenant), k.ID, date(2024, 5, 10), date(2024, 5, 1))
	require.ErrorIs(t, err, ErrInvalidRange)

	var count int64
	require.NoError(t, db.Model(&bookingModel.Booking{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateKosMissing(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	tenant := seedUser(t, db, constants.RoleSociety)

	_, err := svc.Create(ident(tenant), 999, date(2024, 5, 1), date(2024, 5, 10))
	require.ErrorIs(t, err, ErrKosNotFound)
}

func TestOwnerStatusTransitionOnlyFromPending(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	accepted := bookingModel.StatusAccepted
	b, err = svc.Update(ident(owner), b.ID, UpdateInput{Status: &accepted})
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusAccepted, b.Status)

	// A second owner transition must fail: the booking is no longer PENDING.
	rejected := bookingModel.StatusRejected
	_, err = svc.Update(ident(owner), b.ID, UpdateInput{Status: &rejected})
	require.ErrorIs(t, err, ErrInvalidState)

	var stored bookingModel.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	require.Equal(t, bookingModel.StatusAccepted, stored.Status)
}

func TestTenantCancellationBypassesPendingGate(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	accepted := bookingModel.StatusAccepted
	_, err = svc.Update(ident(owner), b.ID, UpdateInput{Status: &accepted})
	require.NoError(t, err)

	cancelled := bookingModel.StatusCancelled
	b, err = svc.Update(ident(tenant), b.ID, UpdateInput{Status: &cancelled})
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusCancelled, b.Status)

	events, err := svc.StatusHistory(b.ID)
	require.NoError(t, err)
	require.Len(t, events, 3) // PENDING, ACCEPTED, CANCELLED
	require.Equal(t, bookingModel.StatusCancelled, events[2].Status)
	require.Equal(t, tenant.ID, events[2].ChangedBy)
}

func TestTenantNonCancelStatusSilentlyIgnored(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	// Status alone: nothing survives the filter, so the update is rejected.
	accepted := bookingModel.StatusAccepted
	_, err = svc.Update(ident(tenant), b.ID, UpdateInput{Status: &accepted})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)

	// Status plus a date: the date applies, the status request is dropped.
	newEnd := date(2024, 5, 20)
	b, err = svc.Update(ident(tenant), b.ID, UpdateInput{Status: &accepted, EndDate: &newEnd})
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusPending, b.Status)
	require.True(t, b.EndDate.Equal(newEnd))
}

func TestUpdateAuthorization(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	otherOwner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	otherTenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	cancelled := bookingModel.StatusCancelled
	_, err = svc.Update(ident(otherTenant), b.ID, UpdateInput{Status: &cancelled})
	require.ErrorIs(t, err, ErrForbidden)

	accepted := bookingModel.StatusAccepted
	_, err = svc.Update(ident(otherOwner), b.ID, UpdateInput{Status: &accepted})
	require.ErrorIs(t, err, ErrForbidden)

	var stored bookingModel.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	require.Equal(t, bookingModel.StatusPending, stored.Status)
}

func TestUpdateMergedRangeInvariant(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	// Moving start past the stored end must fail even though only one date
	// was supplied.
	badStart := date(2024, 5, 15)
	_, err = svc.Update(ident(tenant), b.ID, UpdateInput{StartDate: &badStart})
	require.ErrorIs(t, err, ErrInvalidRange)

	var stored bookingModel.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	require.True(t, stored.StartDate.Equal(date(2024, 5, 1)))
}

func TestUpdateNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	tenant := seedUser(t, db, constants.RoleSociety)

	cancelled := bookingModel.StatusCancelled
	_, err := svc.Update(ident(tenant), 42, UpdateInput{Status: &cancelled})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAuthorization(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	stranger := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	err = svc.Delete(ident(stranger), b.ID)
	require.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&bookingModel.Booking{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// The kos owner may delete via the transitive root.
	require.NoError(t, svc.Delete(ident(owner), b.ID))
	require.NoError(t, db.Model(&bookingModel.Booking{}).Count(&count).Error)
	require.Zero(t, count)

	events, err := svc.StatusHistory(b.ID)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestGetByIDTenantScoped(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	tenant := seedUser(t, db, constants.RoleSociety)
	otherTenant := seedUser(t, db, constants.RoleSociety)
	k := seedKos(t, db, owner.ID)

	b, err := svc.Create(ident(tenant), k.ID, date(2024, 5, 1), date(2024, 5, 10))
	require.NoError(t, err)

	got, err := svc.GetByID(ident(tenant), b.ID)
	require.NoError(t, err)
	require.Equal(t, k.Name, got.Kos.Name)
	require.Equal(t, tenant.Email, got.User.Email)
	require.Equal(t, owner.ID, got.Kos.Owner.ID)

	// Present but not yours reads as not found.
	_, err = svc.GetByID(ident(otherTenant), b.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
