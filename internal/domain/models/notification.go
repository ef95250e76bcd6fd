// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder channels.
const (
	ChannelTelegram = "telegram"
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Channels lists every reminder channel in display order.
var Channels = []string{ChannelTelegram, ChannelEmail, ChannelWhatsApp}

// Notification defaults.
const (
	DefaultDeliveryTime = "09:00"
	DefaultTimezone     = "UTC"
)

// NotificationPreference is a user's daily-reminder setting for one channel.
type NotificationPreference struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Channel      string             `bson:"channel" json:"channel"`
	Enabled      bool               `bson:"enabled" json:"enabled"`
	DeliveryTime string             `bson:"delivery_time" json:"delivery_time"` // HH:MM local
	Timezone     string             `bson:"timezone" json:"timezone"`           // IANA name
	LastSentOn   string             `bson:"last_sent_on,omitempty" json:"last_sent_on,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidChannel reports whether c is a known channel.
func IsValidChannel(c string) bool {
	for _, ch := range Channels {
		if ch == c {
			return true
		}
	}
	return false
}
