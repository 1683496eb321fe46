package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrAPIKeyMissing: chưa cấu hình DEEPSEEK_API_KEY
var ErrAPIKeyMissing = errors.New("DeepSeek API Key chưa được cấu hình")

// ErrUpstream: dịch vụ AI bên ngoài lỗi hoặc không liên lạc được
var ErrUpstream = errors.New("dịch vụ AI không khả dụng")

// DeepSeekClient gọi API chat-completions dạng OpenAI-compatible.
// Không retry, không streaming; timeout cố định từ cấu hình.
type DeepSeekClient struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *http.Client
}

func NewDeepSeekClient(apiKey, baseURL, model string, timeout time.Duration) *DeepSeekClient {
	return &DeepSeekClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Usage ChatUsage `json:"usage"`
}

// ChatCompletion gửi messages lên DeepSeek và trả về response đã parse.
// model rỗng thì dùng model mặc định trong cấu hình.
func (d *DeepSeekClient) ChatCompletion(messages []ChatMessage, model string, temperature float64, maxTokens int) (*ChatResponse, error) {
	if d.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if model == "" {
		model = d.Model
	}

	payload, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, d.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+d.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: mã %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: không parse được response: %v", ErrUpstream, err)
	}
	return &result, nil
}

// Content rút text của lựa chọn đầu tiên, chuỗi rỗng nếu không có
func (r *ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
