package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuizTypeObjective  = "objective"
	QuizTypeSubjective = "subjective"
)

type Quiz struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	VideoID *uint `gorm:"index" json:"video_id"` // null = câu hỏi độc lập, không gắn video

	Question string         `gorm:"type:text;not null" json:"question"`
	Options  datatypes.JSON `json:"options"`
	Answer   string         `gorm:"size:200" json:"answer"`
	Type     string         `gorm:"size:20;default:'objective'" json:"type"`

	Timestamp *int   `json:"timestamp"` // thời điểm trong video (giây)
	Anchor    string `gorm:"size:50" json:"anchor"`

	KnowledgePoint   string         `gorm:"size:200" json:"knowledge_point"`
	Explanation      string         `gorm:"type:text" json:"explanation"`
	ReferenceAnswer  string         `gorm:"type:text" json:"reference_answer"` // câu hỏi subjective bắt buộc có
	SimilarQuestions datatypes.JSON `json:"similar_questions"`

	Difficulty int    `gorm:"default:1" json:"difficulty"` // 1-5
	Category   string `gorm:"size:100" json:"category"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type QuizSubmission struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"index;not null" json:"user_id"`
	QuizID *uint `json:"quiz_id"` // null khi nộp theo bộ đề tĩnh

	Answers         datatypes.JSON `json:"answers"`
	Score           float64        `json:"score"` // luôn là giá trị dẫn xuất từ chấm điểm
	AIFeedback      string         `gorm:"type:text" json:"ai_feedback"`
	SimilarityScore float64        `json:"similarity_score"`

	QuizType string `gorm:"size:20;default:'static'" json:"quiz_type"` // static | video

	TotalQuestions   int `gorm:"default:0" json:"total_questions"`
	CorrectQuestions int `gorm:"default:0" json:"correct_questions"`
	Duration         int `json:"duration"` // giây

	DetailedResults datatypes.JSON `json:"detailed_results"`

	SubmittedAt time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	GradedAt    *time.Time `json:"graded_at"`
}

// QuizStatistics là aggregate chạy tích luỹ theo (user, quiz_type).
// Cập nhật theo công thức streaming, không tính lại từ toàn bộ lịch sử.
type QuizStatistics struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;uniqueIndex:uq_user_quiztype" json:"user_id"`
	QuizType string `gorm:"size:20;default:'static';uniqueIndex:uq_user_quiztype" json:"quiz_type"`

	TotalQuizzes   int     `gorm:"default:0" json:"total_quizzes"`
	AverageScore   float64 `gorm:"default:0" json:"average_score"`
	BestScore      float64 `gorm:"default:0" json:"best_score"`
	WorstScore     float64 `gorm:"default:0" json:"worst_score"`
	TotalCorrect   int     `gorm:"default:0" json:"total_correct"`
	TotalQuestions int     `gorm:"default:0" json:"total_questions"`

	KnowledgeStatistics  datatypes.JSON `json:"knowledge_statistics"`
	DifficultyStatistics datatypes.JSON `json:"difficulty_statistics"`
	WeakAreas            datatypes.JSON `json:"weak_areas"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// QuizOption là cấu trúc một lựa chọn bên trong cột Options
type QuizOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}
