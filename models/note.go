package models

import (
	"time"
)

type Note struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"index;not null" json:"user_id"`
	VideoID uint `gorm:"index;not null" json:"video_id"`

	Content   string `gorm:"type:text" json:"content"`
	Timestamp int    `json:"timestamp"` // vị trí ghi chú trong video (giây)
	Summary   string `gorm:"type:text" json:"summary"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SubtitleTranslation là cache bản dịch phụ đề theo video
type SubtitleTranslation struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	VideoID uint `gorm:"index;not null" json:"video_id"`

	SourceLang     string `gorm:"size:10" json:"source_lang"`
	TargetLang     string `gorm:"size:10" json:"target_lang"`
	OriginalText   string `gorm:"type:text" json:"original_text"`
	TranslatedText string `gorm:"type:text" json:"translated_text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
