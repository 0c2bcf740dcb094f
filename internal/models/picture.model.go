package models

import "time"

type Picture struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int       `gorm:"not null;index"                    json:"user_id"`
	PicturePath string    `gorm:"type:text;not null"                json:"picture_path"`
	SortOrder   int       `gorm:"type:int;default:0"                json:"sort_order"`
	IsPrimary   bool      `gorm:"type:bool;default:false"           json:"is_primary"`
	CreatedAt   time.Time `gorm:"autoCreateTime"                    json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"                    json:"updated_at"`
}

func (Picture) TableName() string {
	return "user_pictures"
}

type PictureResource struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	PicturePath string    `json:"picture_path"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Picture) ToResource() PictureResource {
	return PictureResource{
		ID:          p.ID,
		UserID:      p.UserID,
		PicturePath: p.PicturePath,
		IsPrimary:   p.IsPrimary,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
