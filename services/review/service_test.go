package review

import (
	"testing"

	"kos-booking/constants"
	"kos-booking/database"
	kosModel "kos-booking/models/kos"
	reviewModel "kos-booking/models/review"
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
		Name:          "Kos Anggrek",
		Address:       "Jl. Melati 3, Yogyakarta",
		PricePerMonth: 900000,
		Gender:        constants.GenderFemale,
		OwnerID:       ownerID,
	}
	require.NoError(t, db.Create(&k).Error)
	return k
}

func ident(u userModel.User) types.Identity {
	return types.Identity{ID: u.ID, Role: u.Role}
}

func TestCreateAndMeanRating(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	k := seedKos(t, db, owner.ID)
	tenantA := seedUser(t, db, constants.RoleSociety)
	tenantB := seedUser(t, db, constants.RoleSociety)

	_, err := svc.Create(ident(tenantA), k.ID, "Bersih dan nyaman", 5)
	require.NoError(t, err)
	_, err = svc.Create(ident(tenantB), k.ID, "Lumayan", 4)
	require.NoError(t, err)

	reviews, mean, err := svc.ListByKos(k.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.InDelta(t, 4.5, mean, 1e-9)
}

func TestCreateKosMissing(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	tenant := seedUser(t, db, constants.RoleSociety)

	_, err := svc.Create(ident(tenant), 123, "Bagus", 5)
	require.ErrorIs(t, err, ErrKosNotFound)
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	k := seedKos(t, db, owner.ID)
	tenant := seedUser(t, db, constants.RoleSociety)
	other := seedUser(t, db, constants.RoleSociety)

	r, err := svc.Create(ident(tenant), k.ID, "Oke", 3)
	require.NoError(t, err)

	newRating := 4
	_, err = svc.Update(ident(other), r.ID, nil, &newRating)
	require.ErrorIs(t, err, ErrForbidden)

	// The kos owner cannot edit the review body either.
	_, err = svc.Update(ident(owner), r.ID, nil, &newRating)
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ident(tenant), r.ID, nil, &newRating)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Rating)
}

func TestDeleteDualRooted(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	k := seedKos(t, db, owner.ID)
	tenant := seedUser(t, db, constants.RoleSociety)
	stranger := seedUser(t, db, constants.RoleSociety)

	r, err := svc.Create(ident(tenant), k.ID, "Oke", 3)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ident(stranger), r.ID), ErrForbidden)

	// The kos owner may delete through the transitive root.
	require.NoError(t, svc.Delete(ident(owner), r.ID))

	var count int64
	require.NoError(t, db.Model(&reviewModel.Review{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReplyOwnerOnly(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, constants.RoleOwner)
	otherOwner := seedUser(t, db, constants.RoleOwner)
	k := seedKos(t, db, owner.ID)
	tenant := seedUser(t, db, constants.RoleSociety)

	r, err := svc.Create(ident(tenant), k.ID, "Kamar mandi kotor", 2)
	require.NoError(t, err)

	_, err = svc.Reply(ident(otherOwner), r.ID, "Terima kasih masukannya")
	require.ErrorIs(t, err, ErrForbidden)

	replied, err := svc.Reply(ident(owner), r.ID, "Sudah kami bersihkan")
	require.NoError(t, err)
	require.NotNil(t, replied.OwnerReply)
	require.Equal(t, "Sudah kami bersihkan", *replied.OwnerReply)
}
