package models

import "time"

type SwipeAction string

const (
	SwipeActionLike SwipeAction = "like"
	SwipeActionNope SwipeAction = "nope"
)

func (a SwipeAction) IsValid() bool {
	return a == SwipeActionLike || a == SwipeActionNope
}

// Swipe is append-only. Nothing updates or deletes a row once written, and
// the same swiper may swipe the same target more than once.
type Swipe struct {
	ID        int         `gorm:"primaryKey;autoIncrement"            json:"id"`
	SwiperID  int         `gorm:"not null;index"                               json:"swiper_id"`
	SwipedID  int         `gorm:"not null;index:idx_swipes_swiped_action"      json:"swiped_id"`
	Action    SwipeAction `gorm:"type:varchar(10);not null;index:idx_swipes_swiped_action" json:"action"`
	CreatedAt time.Time   `gorm:"autoCreateTime"                               json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime"                               json:"updated_at"`

	Swiper *User `gorm:"foreignKey:SwiperID" json:"-"`
	Swiped *User `gorm:"foreignKey:SwipedID" json:"-"`
}
