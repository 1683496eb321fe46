package services

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/e-learning-backend/models"
)

// Điểm tối đa của một câu, câu khách quan đúng ăn trọn
const questionScore = 10.0

// SubmissionAnswers là answers client gửi lên, tách theo loại câu hỏi
type SubmissionAnswers struct {
	Objective  map[string]string `json:"objective"`
	Subjective map[string]string `json:"subjective"`
}

type ObjectiveResult struct {
	UserAnswer    string  `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	Explanation   string  `json:"explanation"`
	Score         float64 `json:"score"`
}

type SubjectiveResult struct {
	UserAnswer      string  `json:"user_answer"`
	ReferenceAnswer string  `json:"reference_answer"`
	Similarity      float64 `json:"similarity"`
	Score           float64 `json:"score"`
	Explanation     string  `json:"explanation"`
	Feedback        string  `json:"feedback"`
}

type GradingSummary struct {
	TotalScore      float64 `json:"total_score"`
	ObjectiveScore  float64 `json:"objective_score"`
	SubjectiveScore float64 `json:"subjective_score"`
	CorrectCount    int     `json:"correct_count"`
	TotalCount      int     `json:"total_count"`
}

type GradingResult struct {
	Objective  map[string]ObjectiveResult  `json:"objective"`
	Subjective map[string]SubjectiveResult `json:"subjective"`
	Summary    GradingSummary              `json:"summary"`
}

// Grader chấm bài: khách quan so khớp đáp án, chủ quan hỏi dịch vụ
// similarity và rơi về khớp từ khoá khi dịch vụ không khả dụng.
type Grader struct {
	DB         *gorm.DB
	Similarity *SimilarityClient
}

func NewGrader(db *gorm.DB, similarity *SimilarityClient) *Grader {
	return &Grader{DB: db, Similarity: similarity}
}

// Grade chấm toàn bộ answers, không ghi gì xuống DB
func (g *Grader) Grade(answers SubmissionAnswers) *GradingResult {
	result := &GradingResult{
		Objective:  map[string]ObjectiveResult{},
		Subjective: map[string]SubjectiveResult{},
		Summary: GradingSummary{
			TotalCount: len(answers.Objective) + len(answers.Subjective),
		},
	}

	for qid, answer := range answers.Objective {
		r, ok := g.gradeObjective(qid, answer)
		if !ok {
			continue
		}
		result.Objective[qid] = r
		if r.IsCorrect {
			result.Summary.ObjectiveScore += questionScore
			result.Summary.CorrectCount++
		}
	}

	for qid, answer := range answers.Subjective {
		r, ok := g.gradeSubjective(qid, answer)
		if !ok {
			continue
		}
		result.Subjective[qid] = r
		result.Summary.SubjectiveScore += r.Score
	}

	result.Summary.TotalScore = result.Summary.ObjectiveScore + result.Summary.SubjectiveScore
	return result
}

func (g *Grader) lookupQuiz(qid string) *models.Quiz {
	id, err := strconv.ParseUint(qid, 10, 64)
	if err != nil {
		return nil
	}
	var quiz models.Quiz
	if err := g.DB.First(&quiz, "id = ?", uint(id)).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("truy vấn câu hỏi %s lỗi: %v", qid, err)
		}
		return nil
	}
	return &quiz
}

func (g *Grader) gradeObjective(qid, answer string) (ObjectiveResult, bool) {
	if quiz := g.lookupQuiz(qid); quiz != nil && quiz.Type == models.QuizTypeObjective {
		isCorrect := strings.EqualFold(strings.TrimSpace(answer), quiz.Answer)
		r := ObjectiveResult{
			UserAnswer:    answer,
			CorrectAnswer: quiz.Answer,
			IsCorrect:     isCorrect,
			Explanation:   quiz.Explanation,
		}
		if isCorrect {
			r.Score = questionScore
		}
		return r, true
	}

	// DB không có câu hỏi này thì tra bộ đề tĩnh
	for _, q := range models.StaticObjectiveQuestions() {
		if strconv.FormatUint(uint64(q.ID), 10) != qid {
			continue
		}
		isCorrect := strings.EqualFold(strings.TrimSpace(answer), q.Answer)
		r := ObjectiveResult{
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		}
		if isCorrect {
			r.Score = questionScore
		}
		return r, true
	}
	return ObjectiveResult{}, false
}

func (g *Grader) gradeSubjective(qid, answer string) (SubjectiveResult, bool) {
	if quiz := g.lookupQuiz(qid); quiz != nil && quiz.Type == models.QuizTypeSubjective {
		similarity, feedback, err := g.Similarity.Compare(answer, quiz.ReferenceAnswer)
		var score float64
		if err != nil {
			// Dịch vụ similarity không khả dụng, chấm bằng khớp từ khoá
			log.Printf("similarity không khả dụng, chấm bằng từ khoá: %v", err)
			score, similarity, feedback = keywordScore(quiz.ReferenceAnswer, answer)
		} else {
			score = math.Round(similarity*questionScore*100) / 100
			if feedback == "" {
				feedback = AnalysisByScore(similarity * 100)
			}
		}
		return SubjectiveResult{
			UserAnswer:      answer,
			ReferenceAnswer: quiz.ReferenceAnswer,
			Similarity:      similarity,
			Score:           score,
			Explanation:     quiz.Explanation,
			Feedback:        feedback,
		}, true
	}

	// Câu hỏi tĩnh luôn chấm bằng khớp từ khoá
	for _, q := range models.StaticSubjectiveQuestions() {
		if strconv.FormatUint(uint64(q.ID), 10) != qid {
			continue
		}
		score, similarity, feedback := keywordScore(q.ReferenceAnswer, answer)
		return SubjectiveResult{
			UserAnswer:      answer,
			ReferenceAnswer: q.ReferenceAnswer,
			Similarity:      similarity,
			Score:           score,
			Explanation:     q.Explanation,
			Feedback:        feedback,
		}, true
	}
	return SubjectiveResult{}, false
}

// keywordScore: lấy 5 token đầu của đáp án tham khảo, đếm token xuất hiện
// nguyên văn trong bài làm; mỗi token trúng được 2 điểm, trần 10.
func keywordScore(reference, answer string) (score, similarity float64, feedback string) {
	keywords := strings.Fields(reference)
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	matchCount := 0
	for _, kw := range keywords {
		if strings.Contains(answer, kw) {
			matchCount++
		}
	}
	score = math.Min(questionScore, float64(2*matchCount))
	similarity = score / questionScore
	feedback = "Khớp từ khoá " + strconv.Itoa(matchCount) + "/" + strconv.Itoa(len(keywords))
	return score, similarity, feedback
}

// SubmitQuiz chấm bài rồi lưu submission + cập nhật thống kê trong một
// transaction. Ghi DB lỗi thì vẫn trả kết quả chấm, submissionID = nil.
func (g *Grader) SubmitQuiz(userID uint, answers SubmissionAnswers, duration int) (*GradingResult, *uint) {
	result := g.Grade(answers)

	var submissionID *uint
	err := g.DB.Transaction(func(tx *gorm.DB) error {
		rawAnswers, err := json.Marshal(answers)
		if err != nil {
			return err
		}
		rawResults, err := json.Marshal(result)
		if err != nil {
			return err
		}

		similarityScore := 0.0
		if len(answers.Subjective) > 0 {
			similarityScore = result.Summary.SubjectiveScore / float64(len(answers.Subjective))
		}

		now := time.Now().UTC()
		submission := models.QuizSubmission{
			UserID:           userID,
			QuizType:         "static",
			Answers:          rawAnswers,
			Score:            result.Summary.TotalScore,
			AIFeedback:       "Chấm điểm tự động hoàn tất",
			SimilarityScore:  similarityScore,
			TotalQuestions:   result.Summary.TotalCount,
			CorrectQuestions: result.Summary.CorrectCount,
			Duration:         duration,
			DetailedResults:  rawResults,
			GradedAt:         &now,
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		if err := upsertStatistics(tx, userID, "static", result.Summary); err != nil {
			return err
		}

		submissionID = &submission.ID
		return nil
	})
	if err != nil {
		// Lưu kết quả là best-effort, không chặn việc trả điểm cho client
		log.Printf("lưu kết quả quiz lỗi: %v", err)
		return result, nil
	}
	return result, submissionID
}

// upsertStatistics cập nhật aggregate theo công thức streaming từ giá trị
// cũ cộng điểm mới, khoá dòng để hai lần nộp song song không ghi đè nhau.
func upsertStatistics(tx *gorm.DB, userID uint, quizType string, summary GradingSummary) error {
	query := tx.Where("user_id = ? AND quiz_type = ?", userID, quizType)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var stats models.QuizStatistics
	err := query.First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.QuizStatistics{
			UserID:         userID,
			QuizType:       quizType,
			TotalQuizzes:   1,
			AverageScore:   summary.TotalScore,
			BestScore:      summary.TotalScore,
			WorstScore:     summary.TotalScore,
			TotalCorrect:   summary.CorrectCount,
			TotalQuestions: summary.TotalCount,
		}
		return tx.Create(&stats).Error
	}
	if err != nil {
		return err
	}

	stats.TotalQuizzes++
	stats.AverageScore = (stats.AverageScore*float64(stats.TotalQuizzes-1) + summary.TotalScore) / float64(stats.TotalQuizzes)
	stats.BestScore = math.Max(stats.BestScore, summary.TotalScore)
	stats.WorstScore = math.Min(stats.WorstScore, summary.TotalScore)
	stats.TotalCorrect += summary.CorrectCount
	stats.TotalQuestions += summary.TotalCount
	return tx.Save(&stats).Error
}
