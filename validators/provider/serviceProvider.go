package providerValidator

import (
	"roomly/middleware"
	"roomly/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var validate = validator.New()

type storeRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=255"`
	ServiceType string         `json:"service_type" validate:"required,max=255"`
	Description string         `json:"description" validate:"required"`
	ContactInfo datatypes.JSON `json:"contact_info"`
}

// Store validates a new provider and stashes the model for the controller.
func Store() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(storeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field()
			}
			return middleware.ValidationError(c, errors)
		}

		provider := &models.ServiceProvider{
			Name:        reqData.Name,
			ServiceType: reqData.ServiceType,
			Description: reqData.Description,
			ContactInfo: reqData.ContactInfo,
		}

		c.Locals("validatedProvider", provider)
		return c.Next()
	}
}

type updateRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=2,max=255"`
	ServiceType *string         `json:"service_type" validate:"omitempty,max=255"`
	Description *string         `json:"description" validate:"omitempty,min=1"`
	ContactInfo *datatypes.JSON `json:"contact_info"`
	IsActive    *bool           `json:"is_active"`
}

// Update validates a partial patch and stashes the column map for the
// controller. Rating is recomputed from reviews and never patchable.
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(updateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field()
			}
			return middleware.ValidationError(c, errors)
		}

		updates := map[string]interface{}{}
		if reqData.Name != nil {
			updates["name"] = *reqData.Name
		}
		if reqData.ServiceType != nil {
			updates["service_type"] = *reqData.ServiceType
		}
		if reqData.Description != nil {
			updates["description"] = *reqData.Description
		}
		if reqData.ContactInfo != nil {
			updates["contact_info"] = *reqData.ContactInfo
		}
		if reqData.IsActive != nil {
			updates["is_active"] = *reqData.IsActive
		}

		c.Locals("validatedProviderPatch", updates)
		return c.Next()
	}
}
