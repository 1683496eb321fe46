package models

import (
	"time"
)

type Video struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CourseID  uint `gorm:"index" json:"course_id"`
	ChapterID uint `gorm:"index" json:"chapter_id"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `gorm:"size:500" json:"video_url"`
	Duration    int    `gorm:"default:0" json:"duration"` // giây
	OrderIndex  int    `gorm:"default:0" json:"order_index"`
	IsFree      bool   `gorm:"default:false" json:"is_free"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Progress duy nhất theo cặp (user, video)
type Progress struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:uq_user_video" json:"user_id"`
	VideoID uint `gorm:"not null;uniqueIndex:uq_user_video" json:"video_id"`

	Progress     int     `gorm:"default:0" json:"progress"` // giây đã xem
	Completed    bool    `gorm:"default:false" json:"completed"`
	PlaybackRate float64 `gorm:"default:1" json:"playback_rate"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
