// Package servicereview is the service-provider specialization of the review
// store. Every mutation recomputes the provider's denormalized rating inside
// the same transaction, so the stored mean is never stale relative to the
// visible reviews.
package servicereview

import (
	"errors"
	"fmt"

	"roomly/models"
	"roomly/services/review"

	"gorm.io/gorm"
)

var (
	// ErrProviderNotFound means the service provider does not exist.
	ErrProviderNotFound = errors.New("service provider not found")
	// ErrDuplicate means the user already reviewed this provider.
	ErrDuplicate = errors.New("already reviewed")
	// ErrNotFound means the review does not exist or the caller does not own it.
	ErrNotFound = errors.New("review not found or access denied")
)

// Service mutates service reviews and keeps provider.rating in sync.
type Service struct {
	db *gorm.DB
}

// NewService builds a service-review service over db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create inserts a review and recomputes the provider rating atomically.
func (s *Service) Create(userID, providerID uint, rating int, comment string) (*models.ServiceReview, error) {
	var provider models.ServiceProvider
	if err := s.db.First(&provider, providerID).Error; err != nil {
		return nil, ErrProviderNotFound
	}

	var existing int64
	if err := s.db.Model(&models.ServiceReview{}).
		Where("service_provider_id = ? AND user_id = ?", providerID, userID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicate
	}

	record := models.ServiceReview{
		ServiceProviderID: providerID,
		UserID:            userID,
		Rating:            rating,
		Comment:           comment,
		IsVerified:        false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return err
		}
		return refreshProviderRating(tx, providerID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&record, record.ID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update patches a review owned by userID and recomputes the provider rating.
func (s *Service) Update(reviewID, userID uint, patch review.Patch) (*models.ServiceReview, error) {
	var record models.ServiceReview
	if err := s.db.Where("id = ? AND user_id = ?", reviewID, userID).First(&record).Error; err != nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&record).Updates(updates).Error; err != nil {
				return err
			}
		}
		return refreshProviderRating(tx, record.ServiceProviderID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&record, record.ID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a review owned by userID and recomputes the provider rating.
func (s *Service) Delete(reviewID, userID uint) error {
	var record models.ServiceReview
	if err := s.db.Where("id = ? AND user_id = ?", reviewID, userID).First(&record).Error; err != nil {
		return ErrNotFound
	}

	// Physical delete: a soft-deleted row would keep occupying the unique
	// (provider, user) slot and block the user from reviewing again.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&record).Error; err != nil {
			return err
		}
		return refreshProviderRating(tx, record.ServiceProviderID)
	})
}

// ListForProvider returns a provider's reviews, newest first.
func (s *Service) ListForProvider(providerID uint, page, perPage int) ([]models.ServiceReview, int64, error) {
	var provider models.ServiceProvider
	if err := s.db.First(&provider, providerID).Error; err != nil {
		return nil, 0, ErrProviderNotFound
	}

	query := s.db.Model(&models.ServiceReview{}).Where("service_provider_id = ?", providerID)

	var total int64
	query.Count(&total)

	var reviews []models.ServiceReview
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListByUser returns the service reviews written by one user, newest first.
func (s *Service) ListByUser(userID uint, page, perPage int) ([]models.ServiceReview, int64, error) {
	query := s.db.Model(&models.ServiceReview{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var reviews []models.ServiceReview
	if err := query.
		Preload("ServiceProvider").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Statistics computes count, mean and histogram over a provider's reviews.
func (s *Service) Statistics(providerID uint) (*review.Statistics, error) {
	var provider models.ServiceProvider
	if err := s.db.First(&provider, providerID).Error; err != nil {
		return nil, ErrProviderNotFound
	}

	base := s.db.Model(&models.ServiceReview{}).Where("service_provider_id = ?", providerID)

	stats := review.Statistics{RatingDistribution: map[string]int{}}
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

// refreshProviderRating rewrites the denormalized mean (rounded to 2
// decimals, 0 when no reviews remain) within the caller's transaction.
func refreshProviderRating(tx *gorm.DB, providerID uint) error {
	var avg *float64
	if err := tx.Model(&models.ServiceReview{}).
		Where("service_provider_id = ?", providerID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return err
	}

	rating := 0.0
	if avg != nil {
		rating = review.RoundRating(*avg)
	}

	return tx.Model(&models.ServiceProvider{}).
		Where("id = ?", providerID).
		Update("rating", rating).Error
}
