package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SimilarityClient gọi microservice so khớp ngữ nghĩa (BERT).
// Trả về độ tương đồng trong [0,1] cho một cặp văn bản.
type SimilarityClient struct {
	BaseURL string
	client  *http.Client
}

func NewSimilarityClient(baseURL string, timeout time.Duration) *SimilarityClient {
	return &SimilarityClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type similarityRequest struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
}

type similarityResponse struct {
	Success    bool    `json:"success"`
	Similarity float64 `json:"similarity"`
	Score      float64 `json:"score"`
	Analysis   string  `json:"analysis"`
	Message    string  `json:"message"`
}

// Compare trả về (similarity, analysis). Mọi lỗi mạng/HTTP đều trả err
// để bên chấm điểm chuyển sang phương án khớp từ khoá.
func (s *SimilarityClient) Compare(text1, text2 string) (float64, string, error) {
	payload, err := json.Marshal(similarityRequest{Text1: text1, Text2: text2})
	if err != nil {
		return 0, "", err
	}

	resp, err := s.client.Post(s.BaseURL+"/api/similarity", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("không gọi được dịch vụ similarity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("dịch vụ similarity trả mã %d", resp.StatusCode)
	}

	var result similarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, "", fmt.Errorf("không parse được kết quả similarity: %w", err)
	}
	if !result.Success {
		return 0, "", fmt.Errorf("dịch vụ similarity báo lỗi: %s", result.Message)
	}

	return result.Similarity, result.Analysis, nil
}

// AnalysisByScore ánh xạ điểm (thang 100) sang nhận xét theo 5 mức cố định
func AnalysisByScore(score float64) string {
	switch {
	case score >= 90:
		return "Câu trả lời rất chính xác, nắm trọn trọng tâm câu hỏi"
	case score >= 80:
		return "Câu trả lời cơ bản đúng, bao quát được các ý chính"
	case score >= 70:
		return "Câu trả lời đúng một phần, cần bổ sung chi tiết"
	case score >= 60:
		return "Câu trả lời đúng hướng nhưng diễn đạt chưa chính xác"
	default:
		return "Câu trả lời cần cải thiện, nên ôn lại kiến thức liên quan"
	}
}
