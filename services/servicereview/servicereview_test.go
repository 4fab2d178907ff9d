package servicereview

import (
	"fmt"
	"testing"

	"roomly/models"
	"roomly/services/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ServiceProvider{},
		&models.ServiceReview{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProvider(t *testing.T, db *gorm.DB) models.ServiceProvider {
	t.Helper()

	provider := models.ServiceProvider{
		Name:        "Dubai Movers",
		ServiceType: "moving",
		Description: "Door to door moving",
		IsActive:    true,
	}
	require.NoError(t, db.Create(&provider).Error)
	return provider
}

func providerRating(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()

	var provider models.ServiceProvider
	require.NoError(t, db.First(&provider, id).Error)
	return provider.Rating
}

func TestCreateRefreshesProviderRating(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)

	first := seedUser(t, db, "a@example.com")
	_, err := svc.Create(first.ID, provider.ID, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5.0, providerRating(t, db, provider.ID))

	second := seedUser(t, db, "b@example.com")
	_, err = svc.Create(second.ID, provider.ID, 3, "fine")
	require.NoError(t, err)
	assert.Equal(t, 4.0, providerRating(t, db, provider.ID))
}

func TestRatingRoundedToTwoDecimals(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)

	for i, rating := range []int{5, 4, 4} {
		user := seedUser(t, db, fmt.Sprintf("u%d@example.com", i))
		_, err := svc.Create(user.ID, provider.ID, rating, "comment")
		require.NoError(t, err)
	}

	assert.Equal(t, 4.33, providerRating(t, db, provider.ID))
}

func TestCreateRejectsMissingProvider(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.Create(user.ID, 999, 5, "great")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.Create(user.ID, provider.ID, 5, "great")
	require.NoError(t, err)

	_, err = svc.Create(user.ID, provider.ID, 4, "still great")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateRecomputesRating(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)
	user := seedUser(t, db, "a@example.com")

	record, err := svc.Create(user.ID, provider.ID, 5, "great")
	require.NoError(t, err)

	stranger := seedUser(t, db, "b@example.com")
	newRating := 1
	_, err = svc.Update(record.ID, stranger.ID, review.Patch{Rating: &newRating})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 5.0, providerRating(t, db, provider.ID))

	updated, err := svc.Update(record.ID, user.ID, review.Patch{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)
	assert.Equal(t, 1.0, providerRating(t, db, provider.ID))
}

func TestDeleteRecomputesRating(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)

	first := seedUser(t, db, "a@example.com")
	record, err := svc.Create(first.ID, provider.ID, 5, "great")
	require.NoError(t, err)

	second := seedUser(t, db, "b@example.com")
	_, err = svc.Create(second.ID, provider.ID, 3, "fine")
	require.NoError(t, err)
	require.Equal(t, 4.0, providerRating(t, db, provider.ID))

	require.NoError(t, svc.Delete(record.ID, first.ID))
	assert.Equal(t, 3.0, providerRating(t, db, provider.ID))
}

func TestDeleteLastReviewResetsRating(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)
	user := seedUser(t, db, "a@example.com")

	record, err := svc.Create(user.ID, provider.ID, 4, "good")
	require.NoError(t, err)
	require.Equal(t, 4.0, providerRating(t, db, provider.ID))

	require.NoError(t, svc.Delete(record.ID, user.ID))
	assert.Equal(t, 0.0, providerRating(t, db, provider.ID))
}

func TestDeleteFreesProviderForRecreate(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)
	user := seedUser(t, db, "a@example.com")

	record, err := svc.Create(user.ID, provider.ID, 2, "first take")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(record.ID, user.ID))

	// The row must be physically gone, not just marked deleted, or the
	// unique (provider, user) index would block the new review
	var remaining int64
	db.Unscoped().Model(&models.ServiceReview{}).Where("id = ?", record.ID).Count(&remaining)
	assert.Zero(t, remaining)

	recreated, err := svc.Create(user.ID, provider.ID, 5, "second take")
	require.NoError(t, err, "deleting a review must allow reviewing the provider again")
	assert.Equal(t, 5, recreated.Rating)

	// The recomputed rating reflects only live rows
	assert.Equal(t, 5.0, providerRating(t, db, provider.ID))
}

func TestStatistics(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	provider := seedProvider(t, db)

	for i, rating := range []int{5, 5, 2} {
		user := seedUser(t, db, fmt.Sprintf("u%d@example.com", i))
		_, err := svc.Create(user.ID, provider.ID, rating, "comment")
		require.NoError(t, err)
	}

	stats, err := svc.Statistics(provider.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalReviews)
	require.NotNil(t, stats.AverageRating)
	assert.InDelta(t, 4.0, *stats.AverageRating, 0.0001)
	assert.Equal(t, 2, stats.RatingDistribution["5_star"])
	assert.Equal(t, 1, stats.RatingDistribution["2_star"])

	_, err = svc.Statistics(999)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
