package authController

import (
	"log"
	"time"

	"roomly/config"
	"roomly/database"
	"roomly/middleware"
	"roomly/models"
	otpService "roomly/services/otp"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// sendOTPMail is the delivery seam; tests replace it.
var sendOTPMail = utils.SendOTPEmail

func otpStore() *otpService.Service {
	return otpService.NewService(
		database.Database.Db,
		otpService.WithTTL(time.Duration(config.AppConfig.OtpTTLMinutes)*time.Minute),
	)
}

// Register starts the two-phase registration: validates the email is free
// and sends a registration OTP unless one is still outstanding.
func Register(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.Error(c, fiber.StatusConflict, "User with this email already exists")
	}

	store := otpStore()

	if store.HasActive(reqData.Email, models.OtpPurposeRegistration) {
		return middleware.JSON(c, fiber.StatusOK, fiber.Map{
			"message":      "Registration OTP already sent. Please check your email or request a new one.",
			"requires_otp": true,
			"email":        reqData.Email,
		})
	}

	record, err := store.Issue(reqData.Email, models.OtpPurposeRegistration)
	if err != nil {
		log.Printf("Error issuing registration OTP: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	if err := sendOTPMail(reqData.Email, record.Code, "registration"); err != nil {
		// Delete the challenge so a retry is not blocked by a phantom active code
		log.Printf("Error sending registration OTP email: %v", err)
		store.Discard(record)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message":      "Registration OTP sent successfully. Please check your email.",
		"requires_otp": true,
		"email":        reqData.Email,
	})
}

// CompleteRegister finishes registration: verifies the OTP, creates the
// account with a hashed password and issues a session token.
func CompleteRegister(c *fiber.Ctx) error {
	reqData := new(struct {
		Name                string         `json:"name"`
		Email               string         `json:"email"`
		Password            string         `json:"password"`
		Lifestyle           string         `json:"lifestyle"`
		WorkSchedule        string         `json:"work_schedule"`
		PersonalityTraits   datatypes.JSON `json:"personality_traits"`
		CulturalPreferences datatypes.JSON `json:"cultural_preferences"`
		OtpCode             string         `json:"otp_code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	// Re-check the email; the account may have been created since step 1
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.Error(c, fiber.StatusConflict, "User with this email already exists")
	}

	if !otpStore().Verify(reqData.Email, reqData.OtpCode, models.OtpPurposeRegistration) {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to process your request")
	}

	newUser := models.User{
		Name:                reqData.Name,
		Email:               reqData.Email,
		Password:            string(hashedPassword),
		Lifestyle:           reqData.Lifestyle,
		WorkSchedule:        reqData.WorkSchedule,
		PersonalityTraits:   reqData.PersonalityTraits,
		CulturalPreferences: reqData.CulturalPreferences,
		IsVerified:          true, // OTP was just validated
		IsActive:            true,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Email)
	if err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return middleware.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    newUser,
	})
}

// Login starts the two-phase login: checks credentials and sends a login OTP
// unless one is still outstanding. Unknown email and wrong password get the
// same response on purpose.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !user.IsActive {
		return middleware.Error(c, fiber.StatusUnauthorized, "Account is deactivated")
	}

	store := otpStore()

	if store.HasActive(reqData.Email, models.OtpPurposeLogin) {
		return middleware.JSON(c, fiber.StatusOK, fiber.Map{
			"message":      "OTP already sent. Please check your email or request a new one.",
			"requires_otp": true,
			"email":        reqData.Email,
		})
	}

	record, err := store.Issue(reqData.Email, models.OtpPurposeLogin)
	if err != nil {
		log.Printf("Error issuing login OTP: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	if err := sendOTPMail(reqData.Email, record.Code, "login"); err != nil {
		log.Printf("Error sending login OTP email: %v", err)
		store.Discard(record)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message":      "Login OTP sent successfully. Please check your email.",
		"requires_otp": true,
		"email":        reqData.Email,
	})
}

// CompleteLogin finishes login: the password is not re-checked here, trust is
// carried by step 1 plus the OTP binding to the email.
func CompleteLogin(c *fiber.Ctx) error {
	reqData := new(struct {
		Email   string `json:"email"`
		OtpCode string `json:"otp_code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	if !user.IsActive {
		return middleware.Error(c, fiber.StatusUnauthorized, "Account is deactivated")
	}

	if !otpStore().Verify(reqData.Email, reqData.OtpCode, models.OtpPurposeLogin) {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// ResendRegisterOtp re-issues a registration challenge, superseding any
// outstanding one.
func ResendRegisterOtp(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.Error(c, fiber.StatusConflict, "User with this email already exists")
	}

	store := otpStore()

	record, err := store.Issue(reqData.Email, models.OtpPurposeRegistration)
	if err != nil {
		log.Printf("Error issuing registration OTP: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	if err := sendOTPMail(reqData.Email, record.Code, "registration"); err != nil {
		log.Printf("Error sending registration OTP email: %v", err)
		store.Discard(record)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Registration OTP resent successfully",
		"email":   reqData.Email,
	})
}

// ResendLoginOtp re-issues a login challenge for an existing active account.
func ResendLoginOtp(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found with this email")
	}

	if !user.IsActive {
		return middleware.Error(c, fiber.StatusUnauthorized, "Account is deactivated")
	}

	store := otpStore()

	record, err := store.Issue(reqData.Email, models.OtpPurposeLogin)
	if err != nil {
		log.Printf("Error issuing login OTP: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	if err := sendOTPMail(reqData.Email, record.Code, "login"); err != nil {
		log.Printf("Error sending login OTP email: %v", err)
		store.Discard(record)
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Login OTP resent successfully",
		"email":   reqData.Email,
	})
}
