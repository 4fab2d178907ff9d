// Package otp holds the one-time-passcode store behind the two-phase auth
// flows. All access goes through a Service bound to an explicit database
// handle; codes are single-use and expire after the configured TTL.
package otp

import (
	"time"

	"roomly/models"
	"roomly/utils"

	"gorm.io/gorm"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

// Service issues and verifies OTP challenges.
type Service struct {
	db       *gorm.DB
	ttl      time.Duration
	generate func() string
}

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the challenge lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithGenerator overrides code generation (fixed codes in tests).
func WithGenerator(gen func() string) Option {
	return func(s *Service) { s.generate = gen }
}

// NewService builds an OTP service over db.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		ttl:      DefaultTTL,
		generate: utils.GenerateOTP,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue invalidates every outstanding challenge for (email, purpose) and
// stores a fresh one. Both steps run in a single transaction so concurrent
// issuers cannot each end up holding an active code.
func (s *Service) Issue(email string, purpose models.OtpPurpose) (*models.Otp, error) {
	record := models.Otp{
		Email:     email,
		Code:      s.generate(),
		Type:      purpose,
		ExpiresAt: time.Now().Add(s.ttl),
		IsUsed:    false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Otp{}).
			Where("email = ? AND type = ? AND is_used = ?", email, purpose, false).
			Update("is_used", true).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Verify consumes a challenge. The match and the mark-used are one
// conditional UPDATE, so of two concurrent calls with the same valid code
// exactly one succeeds; a second call with the same arguments fails.
func (s *Service) Verify(email, code string, purpose models.OtpPurpose) bool {
	res := s.db.Model(&models.Otp{}).
		Where("email = ? AND code = ? AND type = ? AND is_used = ? AND expires_at > ?",
			email, code, purpose, false, time.Now()).
		Update("is_used", true)
	if res.Error != nil {
		return false
	}
	return res.RowsAffected == 1
}

// HasActive reports whether an unused, unexpired challenge exists for
// (email, purpose).
func (s *Service) HasActive(email string, purpose models.OtpPurpose) bool {
	var count int64
	s.db.Model(&models.Otp{}).
		Where("email = ? AND type = ? AND is_used = ? AND expires_at > ?",
			email, purpose, false, time.Now()).
		Count(&count)
	return count > 0
}

// RecentlyVerified reports whether a consumed challenge exists whose expiry
// falls inside the trailing grace window.
func (s *Service) RecentlyVerified(email string, purpose models.OtpPurpose, within time.Duration) bool {
	var count int64
	s.db.Model(&models.Otp{}).
		Where("email = ? AND type = ? AND is_used = ? AND expires_at > ?",
			email, purpose, true, time.Now().Add(-within)).
		Count(&count)
	return count > 0
}

// Discard hard-deletes a just-issued challenge after a failed delivery so a
// retry is not blocked by a phantom active code.
func (s *Service) Discard(record *models.Otp) error {
	return s.db.Unscoped().Delete(record).Error
}
