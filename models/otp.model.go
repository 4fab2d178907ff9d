package models

import (
	"time"

	"gorm.io/gorm"
)

// OtpPurpose separates the registration and login challenge flows.
type OtpPurpose string

const (
	OtpPurposeRegistration OtpPurpose = "registration"
	OtpPurposeLogin        OtpPurpose = "login"
)

type Otp struct {
	gorm.Model
	Email     string     `gorm:"size:100;not null;index:idx_otp_email_type" json:"email"`
	Code      string     `gorm:"size:6;not null" json:"-"`
	Type      OtpPurpose `gorm:"size:20;not null;default:'registration';index:idx_otp_email_type" json:"type"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	IsUsed    bool       `gorm:"default:false" json:"is_used"`
}
