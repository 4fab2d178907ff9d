package otp

import (
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
	require.NoError(t, db.AutoMigrate(&models.Otp{}))
	return db
}

func TestIssueSupersedesOutstandingCode(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	first, err := svc.Issue("a@example.com", models.OtpPurposeRegistration)
	require.NoError(t, err)

	second, err := svc.Issue("a@example.com", models.OtpPurposeRegistration)
	require.NoError(t, err)

	assert.False(t, svc.Verify("a@example.com", first.Code, models.OtpPurposeRegistration),
		"superseded code must no longer verify")
	assert.True(t, svc.Verify("a@example.com", second.Code, models.OtpPurposeRegistration))

	var active int64
	db.Model(&models.Otp{}).
		Where("email = ? AND is_used = ?", "a@example.com", false).
		Count(&active)
	assert.Zero(t, active)
}

func TestVerifyConsumesCodeExactlyOnce(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	record, err := svc.Issue("a@example.com", models.OtpPurposeLogin)
	require.NoError(t, err)

	assert.True(t, svc.Verify("a@example.com", record.Code, models.OtpPurposeLogin))
	assert.False(t, svc.Verify("a@example.com", record.Code, models.OtpPurposeLogin),
		"a consumed code must not verify again")
}

func TestVerifyWrongCodeLeavesChallengeIntact(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, WithGenerator(func() string { return "111111" }))

	_, err := svc.Issue("a@example.com", models.OtpPurposeLogin)
	require.NoError(t, err)

	assert.False(t, svc.Verify("a@example.com", "000000", models.OtpPurposeLogin))
	assert.True(t, svc.Verify("a@example.com", "111111", models.OtpPurposeLogin))
}

func TestVerifyChecksPurposeAndEmail(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	record, err := svc.Issue("a@example.com", models.OtpPurposeRegistration)
	require.NoError(t, err)

	assert.False(t, svc.Verify("a@example.com", record.Code, models.OtpPurposeLogin))
	assert.False(t, svc.Verify("b@example.com", record.Code, models.OtpPurposeRegistration))
	assert.True(t, svc.Verify("a@example.com", record.Code, models.OtpPurposeRegistration))
}

func TestVerifyExpiredCode(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, WithTTL(-time.Minute))

	record, err := svc.Issue("a@example.com", models.OtpPurposeLogin)
	require.NoError(t, err)

	assert.False(t, svc.Verify("a@example.com", record.Code, models.OtpPurposeLogin))
}

func TestHasActive(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	assert.False(t, svc.HasActive("a@example.com", models.OtpPurposeRegistration))

	record, err := svc.Issue("a@example.com", models.OtpPurposeRegistration)
	require.NoError(t, err)

	assert.True(t, svc.HasActive("a@example.com", models.OtpPurposeRegistration))
	assert.False(t, svc.HasActive("a@example.com", models.OtpPurposeLogin))

	svc.Verify("a@example.com", record.Code, models.OtpPurposeRegistration)
	assert.False(t, svc.HasActive("a@example.com", models.OtpPurposeRegistration))
}

func TestRecentlyVerified(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	record, err := svc.Issue("a@example.com", models.OtpPurposeRegistration)
	require.NoError(t, err)

	assert.False(t, svc.RecentlyVerified("a@example.com", models.OtpPurposeRegistration, time.Minute))

	require.True(t, svc.Verify("a@example.com", record.Code, models.OtpPurposeRegistration))
	assert.True(t, svc.RecentlyVerified("a@example.com", models.OtpPurposeRegistration, time.Minute))
}

func TestDiscardRemovesChallenge(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	record, err := svc.Issue("a@example.com", models.OtpPurposeLogin)
	require.NoError(t, err)
	require.True(t, svc.HasActive("a@example.com", models.OtpPurposeLogin))

	require.NoError(t, svc.Discard(record))

	assert.False(t, svc.HasActive("a@example.com", models.OtpPurposeLogin))

	var count int64
	db.Unscoped().Model(&models.Otp{}).Where("id = ?", record.ID).Count(&count)
	assert.Zero(t, count, "discard must hard-delete the row")
}

func TestGeneratorProducesSixDigits(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	for i := 0; i < 20; i++ {
		record, err := svc.Issue("a@example.com", models.OtpPurposeLogin)
		require.NoError(t, err)
		assert.Len(t, record.Code, 6)
		for _, r := range record.Code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
