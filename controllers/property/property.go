package propertyController

import (
	"strings"
	"time"

	"roomly/database"
	"roomly/middleware"
	"roomly/models"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// applyListingFilters narrows a listing query by the shared query params.
func applyListingFilters(c *fiber.Ctx, query *gorm.DB) *gorm.DB {
	if area := c.Query("area"); area != "" {
		query = query.Where("area IN ?", strings.Split(area, ","))
	}
	if propertyType := c.Query("property_type"); propertyType != "" {
		query = query.Where("property_type = ?", propertyType)
	}
	if roomType := c.Query("room_type"); roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if minPrice := c.QueryFloat("min_price", -1); minPrice >= 0 {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.QueryFloat("max_price", -1); maxPrice >= 0 {
		query = query.Where("price <= ?", maxPrice)
	}
	if bedrooms := c.QueryInt("bedrooms", -1); bedrooms >= 0 {
		query = query.Where("bedrooms = ?", bedrooms)
	}
	if amenities := c.Query("amenities"); amenities != "" {
		for _, amenity := range strings.Split(amenities, ",") {
			query = query.Where(datatypes.JSONArrayQuery("amenities").Contains(amenity))
		}
	}
	return query
}

var sortableColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"size":       true,
	"bedrooms":   true,
	"area":       true,
}

// Index lists available properties with filtering, sorting and pagination.
func Index(c *fiber.Ctx) error {
	db := database.Database.Db

	query := applyListingFilters(c, db.Model(&models.Property{}).Where("is_available = ?", true))

	sortBy := c.Query("sort_by", "created_at")
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(c.Query("sort_order", "desc"), "asc") {
		sortOrder = "ASC"
	}

	page, perPage, offset := utils.PageParams(c, 10)

	var total int64
	query.Count(&total)

	var properties []models.Property
	if err := query.
		Preload("Owner").
		Order(sortBy + " " + sortOrder).
		Offset(offset).
		Limit(perPage).
		Find(&properties).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch properties")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"properties": properties,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// Search runs a text search over title, description and area, with the same
// filters as Index.
func Search(c *fiber.Ctx) error {
	db := database.Database.Db

	query := applyListingFilters(c, db.Model(&models.Property{}).Where("is_available = ?", true))

	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR area ILIKE ?", term, term, term)
	}

	page, perPage, offset := utils.PageParams(c, 10)

	var total int64
	query.Count(&total)

	var properties []models.Property
	if err := query.
		Preload("Owner").
		Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&properties).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to search properties")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"properties": properties,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// Show returns one property by slug.
func Show(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var property models.Property
	if err := database.Database.Db.Preload("Owner").Where("slug = ?", slug).First(&property).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Property not found")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"property": property})
}

// Store creates a listing owned by the caller.
func Store(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedProperty").(*models.Property)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	property := *reqData
	property.OwnerID = userId
	property.Slug = makeSlug(property.Title)
	property.IsAvailable = true
	if property.Currency == "" {
		property.Currency = "AED"
	}
	if property.MinimumStay == 0 {
		property.MinimumStay = 1
	}
	if property.MaximumStay == 0 {
		property.MaximumStay = 12
	}
	if property.Status == "" {
		property.Status = "Active"
	}
	if property.AvailableFrom.IsZero() {
		property.AvailableFrom = time.Now()
	}

	if err := database.Database.Db.Create(&property).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to create property")
	}

	return middleware.JSON(c, fiber.StatusCreated, fiber.Map{
		"message":  "Property created successfully",
		"property": property,
	})
}

// Update patches a listing. Ownership failures read as 404 so listing
// existence is not leaked.
func Update(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	slug := c.Params("slug")

	var property models.Property
	if err := database.Database.Db.
		Where("slug = ? AND owner_id = ?", slug, userId).
		First(&property).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Property not found or access denied")
	}

	updates, ok := c.Locals("validatedPropertyPatch").(map[string]interface{})
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	if len(updates) > 0 {
		if err := database.Database.Db.Model(&property).Updates(updates).Error; err != nil {
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update property")
		}
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message":  "Property updated successfully",
		"property": property,
	})
}

// Destroy deletes a listing owned by the caller.
func Destroy(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	slug := c.Params("slug")

	var property models.Property
	if err := database.Database.Db.
		Where("slug = ? AND owner_id = ?", slug, userId).
		First(&property).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Property not found or access denied")
	}

	if err := database.Database.Db.Delete(&property).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to delete property")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"message": "Property deleted successfully"})
}

// MyProperties lists the caller's own listings, available or not.
func MyProperties(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page, perPage, offset := utils.PageParams(c, 10)

	query := database.Database.Db.Model(&models.Property{}).Where("owner_id = ?", userId)

	var total int64
	query.Count(&total)

	var properties []models.Property
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&properties).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch properties")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"properties": properties,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// makeSlug builds a URL slug from the title plus a short random suffix so
// identical titles never collide on the unique column.
func makeSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	return slug + "-" + uuid.NewString()[:8]
}
