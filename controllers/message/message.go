package messageController

import (
	"roomly/database"
	"roomly/middleware"
	"roomly/models"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
)

// Store sends a direct message, optionally tied to a property listing.
func Store(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		RecipientID uint   `json:"recipient_id"`
		PropertyID  *uint  `json:"property_id"`
		Content     string `json:"content"`
		MessageType string `json:"message_type"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if reqData.Content == "" {
		return middleware.Error(c, fiber.StatusBadRequest, "Content is required")
	}
	if reqData.RecipientID == userId {
		return middleware.Error(c, fiber.StatusBadRequest, "Cannot send message to yourself")
	}

	db := database.Database.Db

	if err := db.First(&models.User{}, reqData.RecipientID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Recipient not found")
	}
	if reqData.PropertyID != nil {
		if err := db.First(&models.Property{}, *reqData.PropertyID).Error; err != nil {
			return middleware.Error(c, fiber.StatusNotFound, "Property not found")
		}
	}

	messageType := reqData.MessageType
	switch messageType {
	case "", "general":
		messageType = "general"
	case "property_inquiry", "roommate_inquiry":
	default:
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid message type")
	}

	message := models.Message{
		SenderID:    userId,
		RecipientID: reqData.RecipientID,
		PropertyID:  reqData.PropertyID,
		Content:     reqData.Content,
		MessageType: messageType,
		IsRead:      false,
	}

	if err := db.Create(&message).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	db.Preload("Sender").Preload("Recipient").Preload("Property").First(&message, message.ID)

	return middleware.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// conversationEntry is one row of the inbox listing.
type conversationEntry struct {
	User        models.User     `json:"user"`
	LastMessage *models.Message `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}

// Conversations lists every user the caller has exchanged messages with,
// each with the latest message and unread count.
func Conversations(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	db := database.Database.Db

	// Distinct peer ids across both directions
	var peerIds []uint
	if err := db.Model(&models.Message{}).
		Select("DISTINCT CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END", userId).
		Where("sender_id = ? OR recipient_id = ?", userId, userId).
		Scan(&peerIds).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch conversations")
	}

	conversations := make([]conversationEntry, 0, len(peerIds))
	for _, peerId := range peerIds {
		var peer models.User
		if err := db.First(&peer, peerId).Error; err != nil {
			continue
		}

		var last models.Message
		entry := conversationEntry{User: peer}
		if err := db.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				userId, peerId, peerId, userId).
			Order("created_at DESC").
			First(&last).Error; err == nil {
			entry.LastMessage = &last
		}

		db.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", peerId, userId, false).
			Count(&entry.UnreadCount)

		conversations = append(conversations, entry)
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"conversations": conversations})
}

// Conversation returns the message history with one user, oldest first, and
// marks the inbound side read.
func Conversation(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	peerId, err := c.ParamsInt("userId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	db := database.Database.Db

	if err := db.First(&models.User{}, peerId).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	page, perPage, offset := utils.PageParams(c, 20)

	query := db.Model(&models.Message{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userId, peerId, peerId, userId)

	var total int64
	query.Count(&total)

	var messages []models.Message
	if err := query.
		Preload("Sender").
		Preload("Recipient").
		Preload("Property").
		Order("created_at ASC").
		Offset(offset).
		Limit(perPage).
		Find(&messages).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	// Fetching the thread marks the other side's messages read
	db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", peerId, userId, false).
		Update("is_read", true)

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"messages":   messages,
		"pagination": utils.Paginate(page, perPage, total),
	})
}

// UnreadCount returns the caller's total unread message count.
func UnreadCount(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var count int64
	database.Database.Db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userId, false).
		Count(&count)

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"unread_count": count})
}

// MarkAsRead marks one received message as read.
func MarkAsRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	messageId, err := c.ParamsInt("messageId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid message id")
	}

	db := database.Database.Db

	var message models.Message
	if err := db.Where("id = ? AND recipient_id = ?", messageId, userId).First(&message).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Message not found")
	}

	if err := db.Model(&message).Update("is_read", true).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update message")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"message": "Message marked as read"})
}

// MarkAllAsRead marks every unread message from one user as read.
func MarkAllAsRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	peerId, err := c.ParamsInt("userId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := database.Database.Db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", peerId, userId, false).
		Update("is_read", true)
	if res.Error != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to update messages")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"message":       "Messages marked as read",
		"updated_count": res.RowsAffected,
	})
}

// Destroy deletes a message the caller sent.
func Destroy(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	messageId, err := c.ParamsInt("messageId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid message id")
	}

	db := database.Database.Db

	var message models.Message
	if err := db.Where("id = ? AND sender_id = ?", messageId, userId).First(&message).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Message not found or access denied")
	}

	if err := db.Delete(&message).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to delete message")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{"message": "Message deleted successfully"})
}

// PropertyMessages lists the caller's messages tied to one property.
func PropertyMessages(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	propertyId, err := c.ParamsInt("propertyId")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid property id")
	}

	page, perPage, offset := utils.PageParams(c, 20)

	query := database.Database.Db.Model(&models.Message{}).
		Where("property_id = ?", propertyId).
		Where("sender_id = ? OR recipient_id = ?", userId, userId)

	var total int64
	query.Count(&total)

	var messages []models.Message
	if err := query.
		Preload("Sender").
		Preload("Recipient").
		Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&messages).Error; err != nil {
		return middleware.Error(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	return middleware.JSON(c, fiber.StatusOK, fiber.Map{
		"messages":   messages,
		"pagination": utils.Paginate(page, perPage, total),
	})
}
