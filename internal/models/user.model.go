package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Name      string              `gorm:"type:text;not null"         json:"name"`
	Age       int                 `gorm:"type:int"                   json:"age"`
	Email     string              `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password  string              `gorm:"type:text;not null"         json:"-"`
	Latitude  decimal.NullDecimal `gorm:"type:decimal(10,8)"         json:"latitude"`
	Longitude decimal.NullDecimal `gorm:"type:decimal(11,8)"         json:"longitude"`

	// PopularNotifiedAt moves from nil to a timestamp exactly once, when the
	// admin has been told this user crossed the popularity threshold.
	PopularNotifiedAt *time.Time `gorm:"type:timestamp;index" json:"popular_notified_at,omitempty"`

	Pictures []Picture `gorm:"foreignKey:UserID" json:"pictures"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

// UserResource is the public shape of a user returned by the API.
type UserResource struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Age       int               `json:"age"`
	Latitude  *float64          `json:"latitude"`
	Longitude *float64          `json:"longitude"`
	Pictures  []PictureResource `json:"pictures"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (u *User) ToResource() UserResource {
	pictures := make([]PictureResource, 0, len(u.Pictures))
	for i := range u.Pictures {
		pictures = append(pictures, u.Pictures[i].ToResource())
	}

	return UserResource{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Latitude:  nullDecimalToFloat(u.Latitude),
		Longitude: nullDecimalToFloat(u.Longitude),
		Pictures:  pictures,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// DisplayPicture returns the primary picture, falling back to the first one.
func (u *User) DisplayPicture() *Picture {
	if len(u.Pictures) == 0 {
		return nil
	}

	for i := range u.Pictures {
		if u.Pictures[i].IsPrimary {
			return &u.Pictures[i]
		}
	}

	return &u.Pictures[0]
}

func (u *User) IsPopularNotified() bool {
	return u.PopularNotifiedAt != nil
}

func ToResources(users []*User) []UserResource {
	resources := make([]UserResource, 0, len(users))
	for _, user := range users {
		resources = append(resources, user.ToResource())
	}
	return resources
}

func nullDecimalToFloat(value decimal.NullDecimal) *float64 {
	if !value.Valid {
		return nil
	}
	f := value.Decimal.InexactFloat64()
	return &f
}

// PopularUser is a row of the popularity aggregate: a user that has not yet
// been flagged, with the number of likes received.
type PopularUser struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	LikeCount int64  `json:"like_count"`
}
