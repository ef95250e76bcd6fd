// internal/domain/models/telegram.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Telegram link statuses.
const (
	TelegramPending   = "pending"
	TelegramConnected = "connected"
)

// TelegramLink ties a user to a Telegram chat. A pending link holds a
// 6-digit activation code that the user sends to the bot.
type TelegramLink struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	TelegramChatID *int64             `bson:"telegram_chat_id" json:"telegram_chat_id"`
	ActivationCode int                `bson:"activation_code" json:"activation_code"`
	Status         string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
