package review

import (
	"fmt"
	"testing"
	"time"

	"roomly/models"

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
		&models.Property{},
		&models.ServiceProvider{},
		&models.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProperty(t *testing.T, db *gorm.DB, ownerID uint, slug string) models.Property {
	t.Helper()

	property := models.Property{
		Title:         "Room in Marina",
		Slug:          slug,
		Description:   "Bright room",
		Area:          "Dubai Marina",
		PropertyType:  "apartment",
		RoomType:      "private",
		Price:         3500,
		BillingCycle:  "monthly",
		AvailableFrom: time.Now(),
		OwnerID:       ownerID,
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func TestCreateRejectsSelfReview(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.Create(user.ID, models.ReviewableUser, user.ID, 5, "great")
	assert.ErrorIs(t, err, ErrSelfReview)
}

func TestCreateRejectsMissingTarget(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.Create(user.ID, models.ReviewableProperty, 999, 4, "nice")
	assert.ErrorIs(t, err, ErrTargetNotFound)

	_, err = svc.Create(user.ID, models.ReviewableType("bogus"), 1, 4, "nice")
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestCreateRejectsDuplicatePerTarget(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	reviewer := seedUser(t, db, "a@example.com")
	owner := seedUser(t, db, "b@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	_, err := svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, 4, "nice")
	require.NoError(t, err)

	_, err = svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, 5, "nicer")
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same reviewer, different target of a different kind is fine
	_, err = svc.Create(reviewer.ID, models.ReviewableUser, owner.ID, 5, "good host")
	assert.NoError(t, err)

	// And a second property too
	other := seedProperty(t, db, owner.ID, "room-2")
	_, err = svc.Create(reviewer.ID, models.ReviewableProperty, other.ID, 3, "ok")
	assert.NoError(t, err)
}

func TestStatisticsEmptyTarget(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, "a@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	stats, err := svc.Statistics(models.ReviewableProperty, property.ID)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalReviews)
	assert.Nil(t, stats.AverageRating, "average must be nil, not zero, with no reviews")
	for star := 1; star <= 5; star++ {
		assert.Zero(t, stats.RatingDistribution[fmt.Sprintf("%d_star", star)])
	}
}

func TestStatisticsAverageAndHistogram(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, "owner@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	for i, rating := range []int{5, 4, 4, 2} {
		reviewer := seedUser(t, db, fmt.Sprintf("r%d@example.com", i))
		_, err := svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, rating, "comment")
		require.NoError(t, err)
	}

	stats, err := svc.Statistics(models.ReviewableProperty, property.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalReviews)
	require.NotNil(t, stats.AverageRating)
	assert.InDelta(t, 3.75, *stats.AverageRating, 0.0001)
	assert.Equal(t, 1, stats.RatingDistribution["5_star"])
	assert.Equal(t, 2, stats.RatingDistribution["4_star"])
	assert.Equal(t, 1, stats.RatingDistribution["2_star"])
	assert.Equal(t, 0, stats.RatingDistribution["1_star"])
	assert.Equal(t, 0, stats.RatingDistribution["3_star"])
}

func TestStatisticsMissingTarget(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	_, err := svc.Statistics(models.ReviewableProperty, 999)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestListForTargetNewestFirstAndPaginated(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	owner := seedUser(t, db, "owner@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		reviewer := seedUser(t, db, fmt.Sprintf("r%d@example.com", i))
		record := models.Review{
			ReviewerID:     reviewer.ID,
			ReviewableType: models.ReviewableProperty,
			ReviewableID:   property.ID,
			Rating:         (i % 5) + 1,
			Comment:        fmt.Sprintf("comment %d", i),
		}
		record.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&record).Error)
	}

	pageOne, total, err := svc.ListForTarget(models.ReviewableProperty, property.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, pageOne, 10)
	assert.Equal(t, "comment 24", pageOne[0].Comment, "newest review comes first")

	pageThree, _, err := svc.ListForTarget(models.ReviewableProperty, property.ID, 3, 10)
	require.NoError(t, err)
	assert.Len(t, pageThree, 5)
}

func TestUpdateScopedToOwner(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	reviewer := seedUser(t, db, "a@example.com")
	stranger := seedUser(t, db, "b@example.com")
	owner := seedUser(t, db, "c@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	record, err := svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, 3, "ok")
	require.NoError(t, err)

	newRating := 5
	_, err = svc.Update(record.ID, stranger.ID, Patch{Rating: &newRating})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(record.ID, reviewer.ID, Patch{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "ok", updated.Comment, "untouched fields survive a partial patch")
}

func TestDeleteScopedToOwner(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	reviewer := seedUser(t, db, "a@example.com")
	stranger := seedUser(t, db, "b@example.com")
	owner := seedUser(t, db, "c@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	record, err := svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, 3, "ok")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(record.ID, stranger.ID), ErrNotFound)
	assert.NoError(t, svc.Delete(record.ID, reviewer.ID))
	assert.ErrorIs(t, svc.Delete(record.ID, reviewer.ID), ErrNotFound)
}

func TestDeleteFreesTargetForRecreate(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	reviewer := seedUser(t, db, "a@example.com")
	owner := seedUser(t, db, "b@example.com")
	property := seedProperty(t, db, owner.ID, "room-1")

	record, err := svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, 2, "first take")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(record.ID, reviewer.ID))

	// The row must be physically gone, not just marked deleted, or the
	// unique (reviewer, type, id) index would block the new review
	var remaining int64
	db.Unscoped().Model(&models.Review{}).Where("id = ?", record.ID).Count(&remaining)
	assert.Zero(t, remaining)

	recreated, err := svc.Create(reviewer.ID, models.ReviewableProperty, property.ID, 5, "second take")
	require.NoError(t, err, "deleting a review must allow reviewing the target again")
	assert.Equal(t, 5, recreated.Rating)

	stats, err := svc.Statistics(models.ReviewableProperty, property.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalReviews)
	require.NotNil(t, stats.AverageRating)
	assert.InDelta(t, 5.0, *stats.AverageRating, 0.0001)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.33, RoundRating(4.333333))
	assert.Equal(t, 4.67, RoundRating(4.666666))
	assert.Equal(t, 5.0, RoundRating(5))
}
