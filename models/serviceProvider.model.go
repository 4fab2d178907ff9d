package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceProvider struct {
	gorm.Model
	Name        string         `json:"name" gorm:"size:255;not null"`
	ServiceType string         `json:"service_type" gorm:"size:255;not null;index"`
	Description string         `json:"description" gorm:"type:text;not null"`
	ContactInfo datatypes.JSON `json:"contact_info"`
	Rating      float64        `json:"rating" gorm:"type:decimal(3,2);default:0"` // mean of service reviews, 2dp
	IsActive    bool           `json:"is_active" gorm:"default:true"`
}
