package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/services"
)

type AIController struct {
	Client *services.DeepSeekClient
}

// aiError map lỗi client DeepSeek sang mã HTTP chuẩn của gateway
func aiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAPIKeyMissing):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Chưa cấu hình DEEPSEEK_API_KEY"})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Dịch vụ AI tạm thời không khả dụng"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi gọi dịch vụ AI"})
	}
}

type ChatInput struct {
	Messages    []services.ChatMessage `json:"messages" binding:"required"`
	Model       string                 `json:"model"`
	Temperature float64                `json:"temperature"`
	MaxTokens   int                    `json:"max_tokens"`
}

// Proxy hội thoại thẳng tới chat-completions
func (a *AIController) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu messages"})
		return
	}
	if input.Temperature == 0 {
		input.Temperature = 0.7
	}
	if input.MaxTokens == 0 {
		input.MaxTokens = 2000
	}

	resp, err := a.Client.ChatCompletion(input.Messages, input.Model, input.Temperature, input.MaxTokens)
	if err != nil {
		aiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"content": resp.Content(),
		"model":   resp.Model,
		"usage":   resp.Usage,
	}})
}

type PPTInput struct {
	Topic  string `json:"topic" binding:"required"`
	Slides int    `json:"slides"`
	Style  string `json:"style"`
}

// Sinh dàn ý slide thuyết trình theo chủ đề
func (a *AIController) GeneratePPT(c *gin.Context) {
	var input PPTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu topic"})
		return
	}
	if input.Slides <= 0 {
		input.Slides = 8
	}
	if input.Style == "" {
		input.Style = "professional"
	}

	prompt := fmt.Sprintf(
		"Hãy tạo dàn ý bài thuyết trình %d slide về chủ đề %q theo phong cách %s. "+
			"Mỗi slide gồm tiêu đề và 3-5 gạch đầu dòng nội dung. Trả lời bằng tiếng Việt.",
		input.Slides, input.Topic, input.Style,
	)

	resp, err := a.Client.ChatCompletion([]services.ChatMessage{
		{Role: "user", Content: prompt},
	}, "", 0.7, 3000)
	if err != nil {
		aiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"content": resp.Content(),
		"topic":   input.Topic,
		"slides":  input.Slides,
		"style":   input.Style,
	}})
}

type GenerateQuizInput struct {
	Content    string `json:"content" binding:"required"`
	Type       string `json:"type"`
	Num        int    `json:"num"`
	Difficulty string `json:"difficulty"`
}

var quizTypeNames = map[string]string{
	"multiple_choice": "trắc nghiệm nhiều lựa chọn",
	"true_false":      "đúng/sai",
	"short_answer":    "tự luận ngắn",
	"fill_blank":      "điền vào chỗ trống",
}

func quizPrompt(content, quizType string, num int, difficulty string) string {
	typeName, ok := quizTypeNames[quizType]
	if !ok {
		typeName = quizTypeNames["multiple_choice"]
	}
	return fmt.Sprintf(
		"Dựa trên nội dung sau, hãy tạo %d câu hỏi %s độ khó %s. "+
			"Với câu trắc nghiệm ghi rõ 4 lựa chọn A/B/C/D, đáp án đúng và giải thích ngắn. "+
			"Trả lời bằng tiếng Việt.\n\nNội dung:\n%s",
		num, typeName, difficulty, content,
	)
}

// Sinh câu hỏi kiểm tra từ một đoạn nội dung
func (a *AIController) GenerateQuiz(c *gin.Context) {
	var input GenerateQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu content"})
		return
	}
	if input.Num <= 0 {
		input.Num = 5
	}
	if input.Difficulty == "" {
		input.Difficulty = "medium"
	}

	resp, err := a.Client.ChatCompletion([]services.ChatMessage{
		{Role: "user", Content: quizPrompt(input.Content, input.Type, input.Num, input.Difficulty)},
	}, "", 0.7, 3000)
	if err != nil {
		aiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"content":    resp.Content(),
		"type":       input.Type,
		"num":        input.Num,
		"difficulty": input.Difficulty,
	}})
}

// Sinh câu hỏi từ tài liệu upload (pdf/docx/txt)
func (a *AIController) GenerateQuizFromDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu file tài liệu"})
		return
	}

	text, err := services.ExtractText(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Không đọc được nội dung tài liệu (hỗ trợ pdf, docx, txt)"})
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tài liệu không có nội dung văn bản"})
		return
	}
	// Giới hạn nội dung đưa vào prompt cho tài liệu dài
	if len(text) > 12000 {
		text = text[:12000]
	}

	quizType := c.DefaultPostForm("type", "multiple_choice")
	difficulty := c.DefaultPostForm("difficulty", "medium")
	num := 5
	if raw := c.PostForm("num"); raw != "" {
		fmt.Sscanf(raw, "%d", &num)
		if num <= 0 {
			num = 5
		}
	}

	resp, err := a.Client.ChatCompletion([]services.ChatMessage{
		{Role: "user", Content: quizPrompt(text, quizType, num, difficulty)},
	}, "", 0.7, 3000)
	if err != nil {
		aiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"content":    resp.Content(),
		"filename":   fileHeader.Filename,
		"type":       quizType,
		"num":        num,
		"difficulty": difficulty,
	}})
}

type AnalyzeInput struct {
	Content     string `json:"content" binding:"required"`
	AnalyzeType string `json:"analyze_type"`
}

// Phân tích nội dung: tóm tắt, rút từ khoá hoặc nhận diện cảm xúc
func (a *AIController) Analyze(c *gin.Context) {
	var input AnalyzeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu content"})
		return
	}

	var prompt string
	switch input.AnalyzeType {
	case "keywords":
		prompt = "Hãy liệt kê 10 từ khoá quan trọng nhất trong nội dung sau, mỗi từ một dòng:\n\n" + input.Content
	case "sentiment":
		prompt = "Hãy phân tích cảm xúc (tích cực/tiêu cực/trung lập) của nội dung sau và giải thích ngắn gọn:\n\n" + input.Content
	default:
		input.AnalyzeType = "summary"
		prompt = "Hãy tóm tắt nội dung sau trong 3-5 câu bằng tiếng Việt:\n\n" + input.Content
	}

	resp, err := a.Client.ChatCompletion([]services.ChatMessage{
		{Role: "user", Content: prompt},
	}, "", 0.5, 2000)
	if err != nil {
		aiError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"content":      resp.Content(),
		"analyze_type": input.AnalyzeType,
	}})
}

// Probe một câu ngắn để biết upstream còn sống không
func (a *AIController) Status(c *gin.Context) {
	_, err := a.Client.ChatCompletion([]services.ChatMessage{
		{Role: "user", Content: "ping"},
	}, "", 0, 5)
	if err != nil {
		status := "unavailable"
		if errors.Is(err, services.ErrAPIKeyMissing) {
			status = "unconfigured"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"status": status,
			"model":  a.Client.Model,
		}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"status": "available",
		"model":  a.Client.Model,
	}})
}

func (a *AIController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"service":    "ai-gateway",
		"configured": a.Client.APIKey != "",
	}})
}
