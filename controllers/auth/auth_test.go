package authController

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomly/config"
	"roomly/database"
	"roomly/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sentCode records the last OTP handed to the mail seam.
type sentCode struct {
	email   string
	code    string
	purpose string
	count   int
}

func setupApp(t *testing.T) (*fiber.App, *sentCode) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Otp{}))

	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		OtpTTLMinutes: 10,
	}

	sent := &sentCode{}
	original := sendOTPMail
	sendOTPMail = func(email, code, purpose string) error {
		sent.email = email
		sent.code = code
		sent.purpose = purpose
		sent.count++
		return nil
	}
	t.Cleanup(func() { sendOTPMail = original })

	app := fiber.New()
	app.Post("/register", Register)
	app.Post("/register/complete", CompleteRegister)
	app.Post("/login", Login)
	app.Post("/login/complete", CompleteLogin)
	app.Post("/otp/register/resend", ResendRegisterOtp)
	app.Post("/otp/login/resend", ResendLoginOtp)

	return app, sent
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func seedAccount(t *testing.T, email, password string, active bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:       "Test User",
		Email:      email,
		Password:   string(hashed),
		IsVerified: true,
		IsActive:   active,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	if !active {
		// The column default would overwrite a zero-value false on insert
		require.NoError(t, database.Database.Db.Model(&user).Update("is_active", false).Error)
	}
	return user
}

func TestRegistrationFlow(t *testing.T) {
	app, sent := setupApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/register", fiber.Map{
		"email": "new@example.com",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["requires_otp"])
	require.Equal(t, 1, sent.count)
	assert.Equal(t, "registration", sent.purpose)

	status, body = doJSON(t, app, http.MethodPost, "/register/complete", fiber.Map{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "password123",
		"otp_code": sent.code,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, true, user["is_verified"])

	// The email is now taken
	status, body = doJSON(t, app, http.MethodPost, "/register", fiber.Map{
		"email": "new@example.com",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User with this email already exists", body["error"])
}

func TestRegisterDoesNotReissueOutstandingOtp(t *testing.T) {
	app, sent := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["message"], "already sent")
	assert.Equal(t, 1, sent.count, "no second email while a code is outstanding")

	// Resend forces a fresh code
	status, _ = doJSON(t, app, http.MethodPost, "/otp/register/resend", fiber.Map{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, sent.count)
}

func TestRegisterSendFailureUnblocksRetry(t *testing.T) {
	app, sent := setupApp(t)

	failing := true
	previous := sendOTPMail
	sendOTPMail = func(email, code, purpose string) error {
		if failing {
			return errors.New("smtp down")
		}
		return previous(email, code, purpose)
	}

	status, body := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"email": "a@example.com"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to send OTP. Please try again.", body["error"])

	// The failed challenge was discarded, so a retry sends a new one
	failing = false
	status, _ = doJSON(t, app, http.MethodPost, "/register", fiber.Map{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, sent.count)
}

func TestCompleteRegisterRejectsBadOtp(t *testing.T) {
	app, sent := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, status)

	wrong := "000000"
	if sent.code == wrong {
		wrong = "000001"
	}
	status, body := doJSON(t, app, http.MethodPost, "/register/complete", fiber.Map{
		"name":     "A",
		"email":    "a@example.com",
		"password": "password123",
		"otp_code": wrong,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired OTP", body["error"])

	// The real code still works after a failed guess
	status, _ = doJSON(t, app, http.MethodPost, "/register/complete", fiber.Map{
		"name":     "A",
		"email":    "a@example.com",
		"password": "password123",
		"otp_code": sent.code,
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestLoginFlow(t *testing.T) {
	app, sent := setupApp(t)
	seedAccount(t, "user@example.com", "password123", true)

	// Unknown email and wrong password produce the same response
	status, body := doJSON(t, app, http.MethodPost, "/login", fiber.Map{
		"email": "ghost@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/login", fiber.Map{
		"email": "user@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])
	assert.Zero(t, sent.count)

	status, body = doJSON(t, app, http.MethodPost, "/login", fiber.Map{
		"email": "user@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["requires_otp"])
	require.Equal(t, 1, sent.count)
	assert.Equal(t, "login", sent.purpose)

	status, body = doJSON(t, app, http.MethodPost, "/login/complete", fiber.Map{
		"email": "user@example.com", "otp_code": "999999",
	})
	if sent.code == "999999" {
		t.Skip("generated code collided with the wrong-guess fixture")
	}
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired OTP", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/login/complete", fiber.Map{
		"email": "user@example.com", "otp_code": sent.code,
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	// The code is single use
	status, _ = doJSON(t, app, http.MethodPost, "/login/complete", fiber.Map{
		"email": "user@example.com", "otp_code": sent.code,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	app, sent := setupApp(t)
	seedAccount(t, "user@example.com", "password123", false)

	status, body := doJSON(t, app, http.MethodPost, "/login", fiber.Map{
		"email": "user@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Account is deactivated", body["error"])
	assert.Zero(t, sent.count)
}

func TestResendLoginOtpRequiresAccount(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/otp/login/resend", fiber.Map{
		"email": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found with this email", body["error"])
}
