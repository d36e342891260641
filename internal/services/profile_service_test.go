package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/aaditya996/City-Issue-Tracker/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func countProfiles(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)

	first, err := svc.EnsureProfile(user.ID)
	require.NoError(t, err)
	second, err := svc.EnsureProfile(user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, first.Gender)
	assert.Nil(t, first.Age)
	assert.Equal(t, int64(1), countProfiles(t, db, user.ID))
}

func TestEnsureProfileConcurrentFirstAccess(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)

	const workers = 16
	ids := make([]uuid.UUID, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.EnsureProfile(user.ID)
			errs[i] = err
			if err == nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int64(1), countProfiles(t, db, user.ID))
}

func TestGetProfileCreatesLazily(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)
	require.Zero(t, countProfiles(t, db, user.ID))

	gotUser, profile, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", gotUser.Username)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, int64(1), countProfiles(t, db, user.ID))

	_, _, err = svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileWritesBothRecords(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)
	age := 34

	_, _, err := svc.Update(user.ID, &dto.UpdateProfileRequest{
		ProfileImage:  strPtr("profile_pics/asha.png"),
		Gender:        strPtr("F"),
		Age:           &age,
		ContactNumber: strPtr("9876543210"),
		Address:       strPtr("12 Lake View"),
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "asha.rao@example.com",
	})
	require.NoError(t, err)

	gotUser, profile, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", gotUser.FirstName)
	assert.Equal(t, "Rao", gotUser.LastName)
	assert.Equal(t, "asha.rao@example.com", gotUser.Email)
	require.NotNil(t, profile.Gender)
	assert.Equal(t, models.GenderFemale, *profile.Gender)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 34, *profile.Age)
	assert.Equal(t, "profile_pics/asha.png", *profile.ProfileImage)

	// Omitted avatar is kept; other omitted fields are cleared.
	_, profile, err = svc.Update(user.ID, &dto.UpdateProfileRequest{Email: "asha.rao@example.com"})
	require.NoError(t, err)
	require.NotNil(t, profile.ProfileImage)
	assert.Equal(t, "profile_pics/asha.png", *profile.ProfileImage)
	assert.Nil(t, profile.Gender)
	assert.Nil(t, profile.Age)
	assert.Nil(t, profile.Address)
	assert.Equal(t, int64(1), countProfiles(t, db, user.ID))
}

func TestUpdateProfileInvalidEmailChangesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)
	_, _, err := svc.Update(user.ID, &dto.UpdateProfileRequest{
		Address: strPtr("Old address"), FirstName: "Asha", Email: "asha@example.com",
	})
	require.NoError(t, err)

	for _, email := range []string{"not-an-email", ""} {
		_, _, err = svc.Update(user.ID, &dto.UpdateProfileRequest{
			Address: strPtr("New address"), FirstName: "Changed", Email: email,
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
	}

	gotUser, profile, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", gotUser.FirstName)
	assert.Equal(t, "asha@example.com", gotUser.Email)
	assert.Equal(t, "Old address", *profile.Address)
}

func TestUpdateProfileRejectsUnknownGender(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)

	_, _, err := svc.Update(user.ID, &dto.UpdateProfileRequest{Gender: strPtr("X"), Email: "a@example.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "gender")
}

func TestUpdateProfileRollsBackOnUserWriteFailure(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db)
	user := createUser(t, db, "asha", false)
	_, _, err := svc.Update(user.ID, &dto.UpdateProfileRequest{Address: strPtr("Old address"), Email: "asha@example.com"})
	require.NoError(t, err)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_users", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "users" {
			tx.AddError(errors.New("users table unavailable"))
		}
	}))

	_, _, err = svc.Update(user.ID, &dto.UpdateProfileRequest{Address: strPtr("New address"), Email: "new@example.com"})
	require.Error(t, err)

	require.NoError(t, db.Callback().Update().Remove("test:fail_users"))

	gotUser, profile, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", gotUser.Email)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "Old address", *profile.Address)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(testutil.NewDB(t))
	_, _, err := svc.Update(uuid.New(), &dto.UpdateProfileRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
