package authRoutes

import (
	authControllers "roomly/controllers/auth"
	authValidators "roomly/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", authValidators.Register(), authControllers.Register)
	app.Post("/register/complete", authValidators.CompleteRegister(), authControllers.CompleteRegister)
	app.Post("/login", authValidators.Login(), authControllers.Login)
	app.Post("/login/complete", authValidators.CompleteLogin(), authControllers.CompleteLogin)
	app.Post("/otp/register/resend", authValidators.ResendOtp(), authControllers.ResendRegisterOtp)
	app.Post("/otp/login/resend", authValidators.ResendOtp(), authControllers.ResendLoginOtp)
}
