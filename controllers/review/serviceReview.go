package reviewController

import (
	"errors"

	"roomly/database"
	"roomly/middleware"
	reviewService "roomly/services/review"
	"roomly/services/servicereview"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
)

func serviceReviews() *servicereview.Service {
	return servicereview.NewService(database.Database.Db)
}

// StoreServiceReview creates a review for a service provider and refreshes
// the provider's aggregate rating.
func StoreServiceReview(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		ServiceProviderID uint   `json:"service_provider_id"`
		Rating            int    `json:"rating"`
		Comment           string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if reqData.ServiceProviderID == 0 {
		return middleware.Error(c, fiber.StatusBadRequest, "Service provider id is required")
	}
	if reqData.Rating < 1 || reqData.Rating > 5 {
		return middleware.Error(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}
	if reqData.Comment == "" {
		return middleware.Error(c, fiber.StatusBadRequest, "Comment is required")
	}

	record, err := serviceReviews().Create(userId, reqData.ServiceProviderID, reqData.Rating, reqData.Comment)
	if err != nil {
		switch {
		case errors.Is(err, servicereview.ErrProviderNotFound):
			return middleware.Error(c, fiber.StatusNotFound, "Service provider not found")
		case errors.Is(err, servicereview.ErrDuplicate):
			return middleware.Error(c, fiber.StatusConflict, "You have already reviewed this service provider")
		default:
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to create review")
		}
	}

	return middleware.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Review created successfully",
		"review":  record,
	})
}

// ProviderReviews lists one provider's reviews, newest first.
func ProviderReviews(c *fiber.Ctx) error {
	providerId, err := c.ParamsInt("providerId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid service provider id")
	}

	page, perPage, _ := utils.PageParams(c, 10)

	items, total, err := serviceReviews().ListForProvider(uint(providerId), page, perPage)
	if err != nil {
		if errors.Is(err, servicereview.ErrProviderNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Service provider not found")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"reviews":    items,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// MyServiceReviews lists the service reviews written by the caller.
func MyServiceReviews(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page, perPage, _ := utils.PageParams(c, 10)

	items, total, err := serviceReviews().ListByUser(userId, page, perPage)
	if err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"reviews":    items,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// UpdateServiceReview patches a service review owned by the caller.
func UpdateServiceReview(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reviewId, err := c.ParamsInt("reviewId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review id")
	}

	reqData := new(struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if reqData.Rating != nil && (*reqData.Rating < 1 || *reqData.Rating > 5) {
		return middleware.Error(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}

	record, err := serviceReviews().Update(uint(reviewId), userId, reviewService.Patch{
		Rating:  reqData.Rating,
		Comment: reqData.Comment,
	})
	if err != nil {
		if errors.Is(err, servicereview.ErrNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Review not found or access denied")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update review")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Review updated successfully",
		"review":  record,
	})
}

// DestroyServiceReview deletes a service review owned by the caller.
func DestroyServiceReview(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reviewId, err := c.ParamsInt("reviewId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review id")
	}

	if err := serviceReviews().Delete(uint(reviewId), userId); err != nil {
		if errors.Is(err, servicereview.ErrNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Review not found or access denied")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to delete review")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"message": "Review deleted successfully"})
}

// ProviderReviewStatistics returns count, average and histogram for one
// provider's reviews.
func ProviderReviewStatistics(c *fiber.Ctx) error {
	providerId, err := c.ParamsInt("providerId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid service provider id")
	}

	stats, err := serviceReviews().Statistics(uint(providerId))
	if err != nil {
		if errors.Is(err, servicereview.ErrProviderNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Service provider not found")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"statistics": stats})
}
