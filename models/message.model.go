package models

import "gorm.io/gorm"

type Message struct {
	gorm.Model
	SenderID    uint   `json:"sender_id" gorm:"not null;index:idx_msg_pair"`
	RecipientID uint   `json:"recipient_id" gorm:"not null;index:idx_msg_pair;index:idx_msg_unread"`
	PropertyID  *uint  `json:"property_id" gorm:"index"`
	Content     string `json:"content" gorm:"type:text;not null"`
	IsRead      bool   `json:"is_read" gorm:"default:false;index:idx_msg_unread"`
	MessageType string `json:"message_type" gorm:"size:30;default:'general'"` // general, property_inquiry, roommate_inquiry

	Sender    *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Recipient *User     `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Property  *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
