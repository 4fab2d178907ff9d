// Package review implements the polymorphic review store: one table serving
// user, property and service-provider targets, with per-reviewer uniqueness
// and derived rating statistics.
package review

import (
	"errors"
	"fmt"
	"math"

	"roomly/models"

	"gorm.io/gorm"
)

var (
	// ErrTargetNotFound means the reviewed entity does not exist.
	ErrTargetNotFound = errors.New("item not found")
	// ErrSelfReview means a user tried to review themselves.
	ErrSelfReview = errors.New("cannot review yourself")
	// ErrDuplicate means the reviewer already reviewed this target.
	ErrDuplicate = errors.New("already reviewed")
	// ErrNotFound means the review does not exist or the caller does not own it.
	ErrNotFound = errors.New("review not found or access denied")
)

// Statistics summarizes the reviews of one target.
type Statistics struct {
	TotalReviews       int64          `json:"total_reviews"`
	AverageRating      *float64       `json:"average_rating"` // nil when there are no reviews
	RatingDistribution map[string]int `json:"rating_distribution"`
}

// Patch carries the updatable review fields; nil means leave unchanged.
type Patch struct {
	Rating  *int
	Comment *string
}

// Service is the reviewable abstraction over an explicit database handle.
type Service struct {
	db *gorm.DB
}

// NewService builds a review service over db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// targetExists resolves the closed kind enum to a concrete table lookup.
func targetExists(db *gorm.DB, kind models.ReviewableType, id uint) (bool, error) {
	var count int64
	var err error
	switch kind {
	case models.ReviewableUser:
		err = db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	case models.ReviewableProperty:
		err = db.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error
	case models.ReviewableServiceProvider:
		err = db.Model(&models.ServiceProvider{}).Where("id = ?", id).Count(&count).Error
	default:
		return false, ErrTargetNotFound
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a review after target-existence, self-review and duplicate
// checks. The duplicate check is advisory; the unique index on
// (reviewer, type, id) is authoritative and converts a create race into
// ErrDuplicate instead of a silent second row.
func (s *Service) Create(reviewerID uint, kind models.ReviewableType, targetID uint, rating int, comment string) (*models.Review, error) {
	if kind == models.ReviewableUser && targetID == reviewerID {
		return nil, ErrSelfReview
	}

	exists, err := targetExists(s.db, kind, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	var existing int64
	if err := s.db.Model(&models.Review{}).
		Where("reviewer_id = ? AND reviewable_type = ? AND reviewable_id = ?", reviewerID, kind, targetID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicate
	}

	record := models.Review{
		ReviewerID:     reviewerID,
		ReviewableType: kind,
		ReviewableID:   targetID,
		Rating:         rating,
		Comment:        comment,
		IsVerified:     false,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if err := s.db.Preload("Reviewer").First(&record, record.ID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies a partial patch to a review owned by reviewerID.
func (s *Service) Update(reviewID, reviewerID uint, patch Patch) (*models.Review, error) {
	var record models.Review
	if err := s.db.Where("id = ? AND reviewer_id = ?", reviewID, reviewerID).First(&record).Error; err != nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
	}
	if len(updates) > 0 {
		if err := s.db.Model(&record).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Preload("Reviewer").First(&record, record.ID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a review owned by reviewerID. The delete is physical: a
// soft-deleted row would keep occupying the unique (reviewer, type, id) slot
// and block the reviewer from ever reviewing that target again.
func (s *Service) Delete(reviewID, reviewerID uint) error {
	res := s.db.Unscoped().Where("id = ? AND reviewer_id = ?", reviewID, reviewerID).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForTarget returns a target's reviews, newest first.
func (s *Service) ListForTarget(kind models.ReviewableType, targetID uint, page, perPage int) ([]models.Review, int64, error) {
	exists, err := targetExists(s.db, kind, targetID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrTargetNotFound
	}

	query := s.db.Model(&models.Review{}).
		Where("reviewable_type = ? AND reviewable_id = ?", kind, targetID)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Preload("Reviewer").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListByReviewer returns the reviews written by one user, newest first.
func (s *Service) ListByReviewer(reviewerID uint, page, perPage int) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("reviewer_id = ?", reviewerID)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListByType returns every review against one target kind, newest first.
func (s *Service) ListByType(kind models.ReviewableType, page, perPage int) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("reviewable_type = ?", kind)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.
		Preload("Reviewer").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Statistics computes count, mean and histogram over a target's reviews.
// The average is nil, not zero, when no reviews exist.
func (s *Service) Statistics(kind models.ReviewableType, targetID uint) (*Statistics, error) {
	exists, err := targetExists(s.db, kind, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	base := s.db.Model(&models.Review{}).
		Where("reviewable_type = ? AND reviewable_id = ?", kind, targetID)

	stats := Statistics{RatingDistribution: map[string]int{}}
	base.Session(&gorm.Session{}).Count(&stats.TotalReviews)

	if stats.TotalReviews > 0 {
		var avg float64
		if err := base.Session(&gorm.Session{}).Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return nil, err
		}
		stats.AverageRating = &avg
	}

	for star := 1; star <= 5; star++ {
		var n int64
		base.Session(&gorm.Session{}).Where("rating = ?", star).Count(&n)
		stats.RatingDistribution[fmt.Sprintf("%d_star", star)] = int(n)
	}

	return &stats, nil
}

// RoundRating rounds half-up to 2 decimals, matching the stored provider
// rating precision.
func RoundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
