package models

import "gorm.io/gorm"

// ReviewableType is the closed set of entity kinds a review can target.
type ReviewableType string

const (
	ReviewableUser            ReviewableType = "user"
	ReviewableProperty        ReviewableType = "property"
	ReviewableServiceProvider ReviewableType = "service_provider"
)

// Valid reports whether t is one of the three known kinds.
func (t ReviewableType) Valid() bool {
	switch t {
	case ReviewableUser, ReviewableProperty, ReviewableServiceProvider:
		return true
	}
	return false
}

type Review struct {
	gorm.Model
	ReviewerID     uint           `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_reviewer_target"`
	ReviewableType ReviewableType `json:"reviewable_type" gorm:"size:30;not null;uniqueIndex:idx_reviewer_target;index"`
	ReviewableID   uint           `json:"reviewable_id" gorm:"not null;uniqueIndex:idx_reviewer_target;index"`
	Rating         int            `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment        string         `json:"comment" gorm:"type:text;not null"`
	IsVerified     bool           `json:"is_verified" gorm:"default:false"`

	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
}
