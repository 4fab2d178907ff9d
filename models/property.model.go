package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Title       string         `json:"title" gorm:"size:100;not null"`
	Slug        string         `json:"slug" gorm:"size:150;unique;not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Area        string         `json:"area" gorm:"size:50;not null;index"`
	Address     datatypes.JSON `json:"address"`
	Coordinates datatypes.JSON `json:"coordinates"`

	PropertyType string `json:"property_type" gorm:"size:30;not null;index"`
	RoomType     string `json:"room_type" gorm:"size:30;not null"`
	Size         int    `json:"size"` // in sq ft
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`

	Price             float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Currency          string  `json:"currency" gorm:"size:3;default:'AED'"`
	BillingCycle      string  `json:"billing_cycle" gorm:"size:20;not null"`
	UtilitiesIncluded bool    `json:"utilities_included" gorm:"default:false"`
	UtilitiesCost     float64 `json:"utilities_cost" gorm:"type:decimal(8,2);default:0"`

	Amenities datatypes.JSON `json:"amenities"`

	AvailableFrom time.Time `json:"available_from"`
	MinimumStay   int       `json:"minimum_stay" gorm:"default:1"`  // in months
	MaximumStay   int       `json:"maximum_stay" gorm:"default:12"` // in months
	IsAvailable   bool      `json:"is_available" gorm:"default:true"`

	Images              datatypes.JSON `json:"images"`
	RoommatePreferences datatypes.JSON `json:"roommate_preferences"`
	MatchingScore       int            `json:"matching_score" gorm:"default:0"`
	Status              string         `json:"status" gorm:"size:20;default:'Active'"`

	OwnerID uint  `json:"owner_id" gorm:"not null;index"`
	Owner   *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
