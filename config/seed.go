package config

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

// Seed nạp dữ liệu tham chiếu: vai trò, quyền, và bộ đề tĩnh khi bảng
// quizzes còn trống. Chạy nhiều lần không tạo trùng.
func Seed(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, DisplayName: "Quản trị viên", Permissions: `["user.manage","course.manage","quiz.manage","ai.use"]`},
		{Name: models.RoleTeacher, DisplayName: "Giảng viên", Permissions: `["course.manage","quiz.manage","ai.use"]`},
		{Name: models.RoleStudent, DisplayName: "Sinh viên", Permissions: `["course.view","quiz.submit"]`},
		{Name: models.RoleAIAssistant, DisplayName: "Trợ lý AI", Permissions: `["ai.use"]`},
	}
	for _, r := range roles {
		if err := db.Where(models.Role{Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s lỗi: %w", r.Name, err)
		}
	}

	permissions := []models.Permission{
		{Name: "Quản lý người dùng", Code: "user.manage", Module: "user"},
		{Name: "Xem khoá học", Code: "course.view", Module: "course"},
		{Name: "Quản lý khoá học", Code: "course.manage", Module: "course"},
		{Name: "Nộp bài trắc nghiệm", Code: "quiz.submit", Module: "quiz"},
		{Name: "Quản lý trắc nghiệm", Code: "quiz.manage", Module: "quiz"},
		{Name: "Dùng dịch vụ AI", Code: "ai.use", Module: "ai"},
	}
	for _, p := range permissions {
		if err := db.Where(models.Permission{Code: p.Code}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed permission %s lỗi: %w", p.Code, err)
		}
	}

	// Bảng quizzes trống thì nạp bộ đề tĩnh vào DB
	var count int64
	if err := db.Model(&models.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, q := range models.StaticObjectiveQuestions() {
		opts, _ := json.Marshal(q.Options)
		quiz := models.Quiz{
			ID:             q.ID,
			Question:       q.Question,
			Options:        opts,
			Answer:         q.Answer,
			Type:           models.QuizTypeObjective,
			Anchor:         q.Anchor,
			KnowledgePoint: q.KnowledgePoint,
			Explanation:    q.Explanation,
		}
		if err := db.Create(&quiz).Error; err != nil {
			return fmt.Errorf("seed quiz %d lỗi: %w", q.ID, err)
		}
	}
	for _, q := range models.StaticSubjectiveQuestions() {
		quiz := models.Quiz{
			ID:              q.ID,
			Question:        q.Question,
			Type:            models.QuizTypeSubjective,
			Anchor:          q.Anchor,
			KnowledgePoint:  q.KnowledgePoint,
			Explanation:     q.Explanation,
			ReferenceAnswer: q.ReferenceAnswer,
		}
		if err := db.Create(&quiz).Error; err != nil {
			return fmt.Errorf("seed quiz %d lỗi: %w", q.ID, err)
		}
	}
	return nil
}
