package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

type QuizController struct {
	Grader *services.Grader
}

// stripAnswer bỏ đáp án trước khi trả đề cho sinh viên
func stripAnswer(q models.StaticQuestion) models.StaticQuestion {
	q.Answer = ""
	q.ReferenceAnswer = ""
	return q
}

// Trả đề gồm hai nhóm objective/subjective. DB lỗi hoặc rỗng thì rơi về
// bộ đề tĩnh, response vẫn success để frontend không phải phân nhánh.
func (q *QuizController) GetQuestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var quizzes []models.Quiz
	err := db.Order("id asc").Find(&quizzes).Error
	if err == nil && len(quizzes) > 0 {
		objective := make([]gin.H, 0)
		subjective := make([]gin.H, 0)
		for i := range quizzes {
			item := gin.H{
				"id":              quizzes[i].ID,
				"anchor":          quizzes[i].Anchor,
				"question":        quizzes[i].Question,
				"knowledge_point": quizzes[i].KnowledgePoint,
			}
			if quizzes[i].Type == models.QuizTypeSubjective {
				subjective = append(subjective, item)
			} else {
				item["options"] = quizzes[i].Options
				objective = append(objective, item)
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"objective":  objective,
			"subjective": subjective,
		}})
		return
	}

	objective := make([]models.StaticQuestion, 0)
	for _, item := range models.StaticObjectiveQuestions() {
		objective = append(objective, stripAnswer(item))
	}
	subjective := make([]models.StaticQuestion, 0)
	for _, item := range models.StaticSubjectiveQuestions() {
		subjective = append(subjective, stripAnswer(item))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đang dùng bộ đề dự phòng",
		"data": gin.H{
			"objective":  objective,
			"subjective": subjective,
		},
	})
}

type SubmitQuizInput struct {
	Answers  services.SubmissionAnswers `json:"answers"`
	Duration int                        `json:"duration"`
}

// Nộp bài và chấm điểm. Kết quả chấm luôn trả về cho client kể cả khi
// không lưu được submission, khi đó submission_id là null.
func (q *QuizController) Submit(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var input SubmitQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu nộp bài không hợp lệ"})
		return
	}
	if len(input.Answers.Objective) == 0 && len(input.Answers.Subjective) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Chưa có câu trả lời nào"})
		return
	}

	result, submissionID := q.Grader.SubmitQuiz(userID, input.Answers, input.Duration)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"data":          result,
		"submission_id": submissionID,
	})
}

// Lịch sử nộp bài của user hiện tại, mới nhất trước
func (q *QuizController) GetSubmissions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var submissions []models.QuizSubmission
	if err := db.Where("user_id = ?", userID).
		Order("submitted_at desc").Limit(limit).Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn lịch sử nộp bài"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": submissions, "total": len(submissions)})
}

// Thống kê tích luỹ theo loại đề, kèm accuracy_rate dẫn xuất
func (q *QuizController) GetStatistics(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	quizType := c.DefaultQuery("quiz_type", "static")

	var stats models.QuizStatistics
	err := db.Where("user_id = ? AND quiz_type = ?", userID, quizType).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"quiz_type":       quizType,
			"total_quizzes":   0,
			"average_score":   0,
			"best_score":      0,
			"worst_score":     0,
			"total_correct":   0,
			"total_questions": 0,
			"accuracy_rate":   0,
		}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn thống kê"})
		return
	}

	accuracy := 0.0
	if stats.TotalQuestions > 0 {
		accuracy = float64(stats.TotalCorrect) / float64(stats.TotalQuestions) * 100
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"quiz_type":       stats.QuizType,
		"total_quizzes":   stats.TotalQuizzes,
		"average_score":   stats.AverageScore,
		"best_score":      stats.BestScore,
		"worst_score":     stats.WorstScore,
		"total_correct":   stats.TotalCorrect,
		"total_questions": stats.TotalQuestions,
		"accuracy_rate":   accuracy,
		"updated_at":      stats.UpdatedAt,
	}})
}
