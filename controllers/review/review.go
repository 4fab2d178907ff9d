package reviewController

import (
	"errors"

	"roomly/database"
	"roomly/middleware"
	"roomly/models"
	reviewService "roomly/services/review"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
)

// pathKinds maps URL segments to the closed target-kind enum.
var pathKinds = map[string]models.ReviewableType{
	"users":             models.ReviewableUser,
	"properties":        models.ReviewableProperty,
	"service-providers": models.ReviewableServiceProvider,
}

func reviews() *reviewService.Service {
	return reviewService.NewService(database.Database.Db)
}

// Store creates a review against a user, property or service provider.
func Store(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		ReviewableType models.ReviewableType `json:"reviewable_type"`
		ReviewableID   uint                  `json:"reviewable_id"`
		Rating         int                   `json:"rating"`
		Comment        string                `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !reqData.ReviewableType.Valid() {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review type")
	}
	if reqData.ReviewableID == 0 {
		return middleware.Error(c, fiber.StatusBadRequest, "Reviewable id is required")
	}
	if reqData.Rating < 1 || reqData.Rating > 5 {
		return middleware.Error(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}
	if reqData.Comment == "" {
		return middleware.Error(c, fiber.StatusBadRequest, "Comment is required")
	}

	record, err := reviews().Create(userId, reqData.ReviewableType, reqData.ReviewableID, reqData.Rating, reqData.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviewService.ErrSelfReview):
			return middleware.Error(c, fiber.StatusBadRequest, "Cannot review yourself")
		case errors.Is(err, reviewService.ErrTargetNotFound):
			return middleware.Error(c, fiber.StatusNotFound, "Item not found")
		case errors.Is(err, reviewService.ErrDuplicate):
			return middleware.Error(c, fiber.StatusConflict, "You have already reviewed this item")
		default:
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to create review")
		}
	}

	return middleware.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Review created successfully",
		"review":  record,
	})
}

// Index lists a target's reviews, newest first.
func Index(c *fiber.Ctx) error {
	kind, ok := pathKinds[c.Params("type")]
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review type")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	page, perPage, _ := utils.PageParams(c, 10)

	items, total, err := reviews().ListForTarget(kind, uint(id), page, perPage)
	if err != nil {
		if errors.Is(err, reviewService.ErrTargetNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Item not found")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"reviews":    items,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// MyReviews lists the reviews written by the caller.
func MyReviews(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page, perPage, _ := utils.PageParams(c, 10)

	items, total, err := reviews().ListByReviewer(userId, page, perPage)
	if err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"reviews":    items,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// Update patches a review owned by the caller.
func Update(c *fiber.Ctx) error {
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

	record, err := reviews().Update(uint(reviewId), userId, reviewService.Patch{
		Rating:  reqData.Rating,
		Comment: reqData.Comment,
	})
	if err != nil {
		if errors.Is(err, reviewService.ErrNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Review not found or access denied")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update review")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Review updated successfully",
		"review":  record,
	})
}

// Destroy deletes a review owned by the caller.
func Destroy(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	reviewId, err := c.ParamsInt("reviewId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review id")
	}

	if err := reviews().Delete(uint(reviewId), userId); err != nil {
		if errors.Is(err, reviewService.ErrNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Review not found or access denied")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to delete review")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"message": "Review deleted successfully"})
}

// Statistics returns count, average and histogram for one target.
func Statistics(c *fiber.Ctx) error {
	kind, ok := pathKinds[c.Params("type")]
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review type")
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid id")
	}

	stats, err := reviews().Statistics(kind, uint(id))
	if err != nil {
		if errors.Is(err, reviewService.ErrTargetNotFound) {
			return middleware.Error(c, fiber.StatusNotFound, "Item not found")
		}
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"statistics": stats})
}

// ByType lists every review against one target kind.
func ByType(c *fiber.Ctx) error {
	kind, ok := pathKinds[c.Params("type")]
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid review type")
	}

	page, perPage, _ := utils.PageParams(c, 10)

	items, total, err := reviews().ListByType(kind, page, perPage)
	if err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"reviews":    items,
		"pagination": utils.Paginate(page, perPage, total),
	})
}
