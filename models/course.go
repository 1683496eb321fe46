package models

import (
	"time"
)

type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	TeacherID uint `gorm:"index" json:"teacher_id"`
	Teacher   User `gorm:"foreignKey:TeacherID" json:"-"`

	Category    string  `gorm:"size:50" json:"category"`
	Level       string  `gorm:"size:20" json:"level"` // beginner | intermediate | advanced
	Duration    int     `json:"duration"`             // phút
	Price       float64 `gorm:"default:0" json:"price"`
	IsPublished bool    `gorm:"default:false" json:"is_published"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Chapters []Chapter `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	Videos   []Video   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
}

// Chapter gom nhóm video trong một khoá học
type Chapter struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CourseID   uint   `gorm:"index;not null" json:"course_id"`
	Title      string `gorm:"size:200;not null" json:"title"`
	OrderIndex int    `gorm:"default:0" json:"order_index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Videos []Video `gorm:"foreignKey:ChapterID" json:"videos,omitempty"`
}
