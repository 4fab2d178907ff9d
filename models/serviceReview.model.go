package models

import "gorm.io/gorm"

type ServiceReview struct {
	gorm.Model
	ServiceProviderID uint   `json:"service_provider_id" gorm:"not null;uniqueIndex:idx_provider_user;index"`
	UserID            uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_provider_user"`
	Rating            int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment           string `json:"comment" gorm:"type:text;not null"`
	IsVerified        bool   `json:"is_verified" gorm:"default:false"`

	ServiceProvider *ServiceProvider `json:"service_provider,omitempty" gorm:"foreignKey:ServiceProviderID"`
	User            *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
