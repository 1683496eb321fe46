package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vnkhanh/e-learning-backend/models"
)

// upstream DeepSeek giả, trả lại prompt nhận được để test kiểm tra
func newAIStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		content := ""
		if len(body.Messages) > 0 {
			content = body.Messages[len(body.Messages)-1].Content
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model": "deepseek-chat",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "echo: " + content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAIChatMissingKey(t *testing.T) {
	r, db, cfg := newTestApp(t)
	user := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, user)

	// cfg test không có DEEPSEEK_API_KEY
	w := doJSON(t, r, http.MethodPost, "/api/v1/ai/chat", token, map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "chào"}},
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestAIChatProxiesUpstream(t *testing.T) {
	srv := newAIStub(t)
	cfg := testConfig()
	cfg.DeepSeekAPIKey = "test-key"
	cfg.DeepSeekAPIURL = srv.URL
	r, db := newTestAppWithConfig(t, cfg)

	user := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, user)

	w := doJSON(t, r, http.MethodPost, "/api/v1/ai/chat", token, map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "xin chào"}},
	})
	assertStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["content"] != "echo: xin chào" {
		t.Fatalf("content phải là text trả về từ upstream: %v", data)
	}
}

func TestAIChatUpstreamDown(t *testing.T) {
	cfg := testConfig()
	cfg.DeepSeekAPIKey = "test-key" // key có nhưng upstream chết
	r, db := newTestAppWithConfig(t, cfg)
	user := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, user)

	w := doJSON(t, r, http.MethodPost, "/api/v1/ai/chat", token, map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "chào"}},
	})
	assertStatus(t, w, http.StatusServiceUnavailable)
}

func TestAIGenerateEndpointsUseDefaults(t *testing.T) {
	srv := newAIStub(t)
	cfg := testConfig()
	cfg.DeepSeekAPIKey = "test-key"
	cfg.DeepSeekAPIURL = srv.URL
	r, db := newTestAppWithConfig(t, cfg)
	user := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, user)

	// PPT: mặc định 8 slide, phong cách professional
	w := doJSON(t, r, http.MethodPost, "/api/v1/ai/ppt/generate", token, map[string]interface{}{
		"topic": "Python",
	})
	assertStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["slides"].(float64) != 8 || data["style"] != "professional" {
		t.Fatalf("tham số mặc định sai: %v", data)
	}

	// Quiz: mặc định 5 câu, độ khó medium
	w = doJSON(t, r, http.MethodPost, "/api/v1/ai/quiz/generate", token, map[string]interface{}{
		"content": "Vòng lặp for trong Python",
	})
	assertStatus(t, w, http.StatusOK)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	if data["num"].(float64) != 5 || data["difficulty"] != "medium" {
		t.Fatalf("tham số mặc định sai: %v", data)
	}

	// Analyze: loại không hợp lệ rơi về summary
	w = doJSON(t, r, http.MethodPost, "/api/v1/ai/analyze", token, map[string]interface{}{
		"content": "Nội dung cần phân tích",
	})
	assertStatus(t, w, http.StatusOK)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	if data["analyze_type"] != "summary" {
		t.Fatalf("analyze_type mặc định phải là summary: %v", data)
	}

	// Thiếu content trả 400
	w = doJSON(t, r, http.MethodPost, "/api/v1/ai/analyze", token, map[string]interface{}{})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestAIStatusAndHealth(t *testing.T) {
	r, db, cfg := newTestApp(t)
	user := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, user)

	// Không có key: status = unconfigured, health configured = false
	w := doJSON(t, r, http.MethodGet, "/api/v1/ai/status", token, nil)
	assertStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["status"] != "unconfigured" {
		t.Fatalf("status phải là unconfigured: %v", data)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/ai/health", token, nil)
	assertStatus(t, w, http.StatusOK)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	if data["configured"] != false {
		t.Fatalf("configured phải là false: %v", data)
	}
}
