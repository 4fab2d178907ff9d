package authValidator

import (
	"regexp"
	"strings"

	"roomly/middleware"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Helper to validate a 6 digit OTP code
func isValidOtpCode(code string) bool {
	re := regexp.MustCompile(`^\d{6}$`)
	return re.MatchString(code)
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationError(c, errors)
		}

		return c.Next()
	}
}

// CompleteRegister validator middleware
func CompleteRegister() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			OtpCode  string `json:"otp_code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}
		if !isValidOtpCode(reqData.OtpCode) {
			errors["otp_code"] = "OTP code must be 6 digits!"
		}

		if len(errors) > 0 {
			return middleware.ValidationError(c, errors)
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationError(c, errors)
		}

		return c.Next()
	}
}

// CompleteLogin validator middleware
func CompleteLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email   string `json:"email"`
			OtpCode string `json:"otp_code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if !isValidOtpCode(reqData.OtpCode) {
			errors["otp_code"] = "OTP code must be 6 digits!"
		}

		if len(errors) > 0 {
			return middleware.ValidationError(c, errors)
		}

		return c.Next()
	}
}

// ResendOtp validator middleware, shared by both resend endpoints
func ResendOtp() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationError(c, errors)
		}

		return c.Next()
	}
}
