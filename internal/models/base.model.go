package models

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int            `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime"                    json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"                    json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index"                             json:"-"`
}
