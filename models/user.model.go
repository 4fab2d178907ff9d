package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string         `json:"name" gorm:"size:50;not null"`
	Email               string         `json:"email" gorm:"unique;not null"`
	Password            string         `json:"-" gorm:"not null"`
	Phone               string         `json:"phone" gorm:"default:''"`
	ProfileImage        string         `json:"profile_image" gorm:"default:''"`
	Lifestyle           string         `json:"lifestyle" gorm:"default:''"`
	WorkSchedule        string         `json:"work_schedule" gorm:"default:''"`
	PersonalityTraits   datatypes.JSON `json:"personality_traits"`
	CulturalPreferences datatypes.JSON `json:"cultural_preferences"`
	Budget              datatypes.JSON `json:"budget"`
	PreferredAreas      datatypes.JSON `json:"preferred_areas"`
	MoveInDate          *time.Time     `json:"move_in_date"`
	LeaseDuration       string         `json:"lease_duration" gorm:"default:''"`
	IsVerified          bool           `json:"is_verified" gorm:"default:false"`
	IsActive            bool           `json:"is_active" gorm:"default:true"`
}
