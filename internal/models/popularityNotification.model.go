package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// PopularityNotification records every attempt the popularity scan makes to
// notify the admin about a user, successful or not.
type PopularityNotification struct {
	ID          int                `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int                `gorm:"not null;index"                    json:"user_id"`
	LikeCount   int64              `gorm:"not null"                          json:"like_count"`
	Recipient   string             `gorm:"type:text;not null"                json:"recipient"`
	Status      NotificationStatus `gorm:"type:varchar(20);not null"         json:"status"`
	Error       *string            `gorm:"type:text"                         json:"error,omitempty"`
	Payload     datatypes.JSON     `json:"payload,omitempty"`
	AttemptedAt time.Time          `gorm:"not null"                          json:"attempted_at"`
	CreatedAt   time.Time          `gorm:"autoCreateTime"                    json:"created_at"`
}
