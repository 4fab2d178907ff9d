package propertyValidator

import (
	"time"

	"roomly/middleware"
	"roomly/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var validate = validator.New()

type storeRequest struct {
	Title       string         `json:"title" validate:"required,min=3,max=100"`
	Description string         `json:"description" validate:"required"`
	Area        string         `json:"area" validate:"required,max=50"`
	Address     datatypes.JSON `json:"address"`
	Coordinates datatypes.JSON `json:"coordinates"`

	PropertyType string `json:"property_type" validate:"required,oneof=apartment villa studio townhouse shared_room"`
	RoomType     string `json:"room_type" validate:"required,oneof=private shared entire_place"`
	Size         int    `json:"size" validate:"gte=0"`
	Bedrooms     int    `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int    `json:"bathrooms" validate:"gte=0"`

	Price             float64 `json:"price" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"omitempty,len=3"`
	BillingCycle      string  `json:"billing_cycle" validate:"required,oneof=monthly quarterly yearly"`
	UtilitiesIncluded bool    `json:"utilities_included"`
	UtilitiesCost     float64 `json:"utilities_cost" validate:"gte=0"`

	Amenities datatypes.JSON `json:"amenities"`

	AvailableFrom time.Time `json:"available_from"`
	MinimumStay   int       `json:"minimum_stay" validate:"omitempty,gte=1"`
	MaximumStay   int       `json:"maximum_stay" validate:"omitempty,gte=1"`

	Images              datatypes.JSON `json:"images"`
	RoommatePreferences datatypes.JSON `json:"roommate_preferences"`
}

// Store validates a new listing and stashes the model for the controller.
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

		if reqData.MinimumStay > 0 && reqData.MaximumStay > 0 && reqData.MinimumStay > reqData.MaximumStay {
			return middleware.ValidationError(c, map[string]string{
				"minimum_stay": "Minimum stay cannot exceed maximum stay",
			})
		}

		property := &models.Property{
			Title:               reqData.Title,
			Description:         reqData.Description,
			Area:                reqData.Area,
			Address:             reqData.Address,
			Coordinates:         reqData.Coordinates,
			PropertyType:        reqData.PropertyType,
			RoomType:            reqData.RoomType,
			Size:                reqData.Size,
			Bedrooms:            reqData.Bedrooms,
			Bathrooms:           reqData.Bathrooms,
			Price:               reqData.Price,
			Currency:            reqData.Currency,
			BillingCycle:        reqData.BillingCycle,
			UtilitiesIncluded:   reqData.UtilitiesIncluded,
			UtilitiesCost:       reqData.UtilitiesCost,
			Amenities:           reqData.Amenities,
			AvailableFrom:       reqData.AvailableFrom,
			MinimumStay:         reqData.MinimumStay,
			MaximumStay:         reqData.MaximumStay,
			Images:              reqData.Images,
			RoommatePreferences: reqData.RoommatePreferences,
		}

		c.Locals("validatedProperty", property)
		return c.Next()
	}
}

type updateRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string         `json:"description" validate:"omitempty,min=1"`
	Area        *string         `json:"area" validate:"omitempty,max=50"`
	Address     *datatypes.JSON `json:"address"`
	Coordinates *datatypes.JSON `json:"coordinates"`

	PropertyType *string `json:"property_type" validate:"omitempty,oneof=apartment villa studio townhouse shared_room"`
	RoomType     *string `json:"room_type" validate:"omitempty,oneof=private shared entire_place"`
	Size         *int    `json:"size" validate:"omitempty,gte=0"`
	Bedrooms     *int    `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *int    `json:"bathrooms" validate:"omitempty,gte=0"`

	Price             *float64 `json:"price" validate:"omitempty,gt=0"`
	Currency          *string  `json:"currency" validate:"omitempty,len=3"`
	BillingCycle      *string  `json:"billing_cycle" validate:"omitempty,oneof=monthly quarterly yearly"`
	UtilitiesIncluded *bool    `json:"utilities_included"`
	UtilitiesCost     *float64 `json:"utilities_cost" validate:"omitempty,gte=0"`

	Amenities *datatypes.JSON `json:"amenities"`

	AvailableFrom *time.Time `json:"available_from"`
	MinimumStay   *int       `json:"minimum_stay" validate:"omitempty,gte=1"`
	MaximumStay   *int       `json:"maximum_stay" validate:"omitempty,gte=1"`
	IsAvailable   *bool      `json:"is_available"`

	Images              *datatypes.JSON `json:"images"`
	RoommatePreferences *datatypes.JSON `json:"roommate_preferences"`
	Status              *string         `json:"status" validate:"omitempty,oneof=Active Inactive Rented"`
}

// Update validates a partial patch and stashes the column map for the
// controller. Slug and owner are never patchable.
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
		if reqData.Title != nil {
			updates["title"] = *reqData.Title
		}
		if reqData.Description != nil {
			updates["description"] = *reqData.Description
		}
		if reqData.Area != nil {
			updates["area"] = *reqData.Area
		}
		if reqData.Address != nil {
			updates["address"] = *reqData.Address
		}
		if reqData.Coordinates != nil {
			updates["coordinates"] = *reqData.Coordinates
		}
		if reqData.PropertyType != nil {
			updates["property_type"] = *reqData.PropertyType
		}
		if reqData.RoomType != nil {
			updates["room_type"] = *reqData.RoomType
		}
		if reqData.Size != nil {
			updates["size"] = *reqData.Size
		}
		if reqData.Bedrooms != nil {
			updates["bedrooms"] = *reqData.Bedrooms
		}
		if reqData.Bathrooms != nil {
			updates["bathrooms"] = *reqData.Bathrooms
		}
		if reqData.Price != nil {
			updates["price"] = *reqData.Price
		}
		if reqData.Currency != nil {
			updates["currency"] = *reqData.Currency
		}
		if reqData.BillingCycle != nil {
			updates["billing_cycle"] = *reqData.BillingCycle
		}
		if reqData.UtilitiesIncluded != nil {
			updates["utilities_included"] = *reqData.UtilitiesIncluded
		}
		if reqData.UtilitiesCost != nil {
			updates["utilities_cost"] = *reqData.UtilitiesCost
		}
		if reqData.Amenities != nil {
			updates["amenities"] = *reqData.Amenities
		}
		if reqData.AvailableFrom != nil {
			updates["available_from"] = *reqData.AvailableFrom
		}
		if reqData.MinimumStay != nil {
			updates["minimum_stay"] = *reqData.MinimumStay
		}
		if reqData.MaximumStay != nil {
			updates["maximum_stay"] = *reqData.MaximumStay
		}
		if reqData.IsAvailable != nil {
			updates["is_available"] = *reqData.IsAvailable
		}
		if reqData.Images != nil {
			updates["images"] = *reqData.Images
		}
		if reqData.RoommatePreferences != nil {
			updates["roommate_preferences"] = *reqData.RoommatePreferences
		}
		if reqData.Status != nil {
			updates["status"] = *reqData.Status
		}

		c.Locals("validatedPropertyPatch", updates)
		return c.Next()
	}
}
