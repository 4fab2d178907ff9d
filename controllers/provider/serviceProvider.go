package providerController

import (
	"strings"

	"roomly/database"
	"roomly/middleware"
	"roomly/models"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
)

// Index lists active service providers with filtering and sorting.
func Index(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.ServiceProvider{}).Where("is_active = ?", true)

	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}
	if minRating := c.QueryFloat("min_rating", -1); minRating >= 0 {
		query = query.Where("rating >= ?", minRating)
	}
	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", term, term)
	}

	sortBy := c.Query("sort_by", "rating")
	switch sortBy {
	case "rating", "name", "created_at":
	default:
		sortBy = "rating"
	}
	sortOrder := "DESC"
	if strings.EqualFold(c.Query("sort_order", "desc"), "asc") {
		sortOrder = "ASC"
	}

	page, perPage, offset := utils.PageParams(c, 10)

	var total int64
	query.Count(&total)

	var providers []models.ServiceProvider
	if err := query.
		Order(sortBy + " " + sortOrder).
		Offset(offset).
		Limit(perPage).
		Find(&providers).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch service providers")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"service_providers": providers,
		"pagination":        utils.Paginate(page, perPage, total),
	})
}

// Search runs a text search over name, description and service type.
func Search(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.ServiceProvider{}).Where("is_active = ?", true)

	if q := c.Query("q"); q != "" {
		term := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR service_type ILIKE ?", term, term, term)
	}
	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}
	if minRating := c.QueryFloat("min_rating", -1); minRating >= 0 {
		query = query.Where("rating >= ?", minRating)
	}

	page, perPage, offset := utils.PageParams(c, 10)

	var total int64
	query.Count(&total)

	var providers []models.ServiceProvider
	if err := query.
		Order("rating DESC").
		Offset(offset).
		Limit(perPage).
		Find(&providers).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to search service providers")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"service_providers": providers,
		"pagination":        utils.Paginate(page, perPage, total),
	})
}

// Show returns one service provider.
func Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid service provider id")
	}

	var provider models.ServiceProvider
	if err := database.Database.Db.First(&provider, id).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Service provider not found")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"service_provider": provider})
}

// Store creates a service provider entry.
func Store(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProvider").(*models.ServiceProvider)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	provider := *reqData
	provider.IsActive = true

	if err := database.Database.Db.Create(&provider).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to create service provider")
	}

	return middleware.JSON(c, fiber.StatusCreated, fiber.Map{
		"message":          "Service provider created successfully",
		"service_provider": provider,
	})
}

// Update patches a service provider entry.
func Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid service provider id")
	}

	db := database.Database.Db

	var provider models.ServiceProvider
	if err := db.First(&provider, id).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Service provider not found")
	}

	updates, ok := c.Locals("validatedProviderPatch").(map[string]interface{})
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	if len(updates) > 0 {
		if err := db.Model(&provider).Updates(updates).Error; err != nil {
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update service provider")
		}
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message":          "Service provider updated successfully",
		"service_provider": provider,
	})
}

// Destroy deletes a service provider entry. Existing reviews keep their
// (type, id) reference; orphans are accepted, not cascaded.
func Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid service provider id")
	}

	db := database.Database.Db

	var provider models.ServiceProvider
	if err := db.First(&provider, id).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Service provider not found")
	}

	if err := db.Delete(&provider).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to delete service provider")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"message": "Service provider deleted successfully"})
}

// ByType lists active providers of one service type, best rated first.
func ByType(c *fiber.Ctx) error {
	serviceType := c.Params("serviceType")

	page, perPage, offset := utils.PageParams(c, 10)

	query := database.Database.Db.Model(&models.ServiceProvider{}).
		Where("service_type = ? AND is_active = ?", serviceType, true)

	var total int64
	query.Count(&total)

	var providers []models.ServiceProvider
	if err := query.
		Order("rating DESC").
		Offset(offset).
		Limit(perPage).
		Find(&providers).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch service providers")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"service_providers": providers,
		"pagination":        utils.Paginate(page, perPage, total),
	})
}

// ServiceTypes returns the distinct service types among active providers.
func ServiceTypes(c *fiber.Ctx) error {
	var types []string
	if err := database.Database.Db.Model(&models.ServiceProvider{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("service_type", &types).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch service types")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"service_types": types})
}
