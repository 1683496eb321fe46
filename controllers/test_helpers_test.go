package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/routes"
	"github.com/vnkhanh/e-learning-backend/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		JWTSecret:         "test-secret",
		AccessTokenTTL:    time.Hour,
		RefreshTTL:        24 * time.Hour,
		DeepSeekAPIURL:    "http://127.0.0.1:1",
		DeepSeekModel:     "deepseek-chat",
		AITimeout:         200 * time.Millisecond,
		SimilarityURL:     "http://127.0.0.1:1",
		SimilarityTimeout: 200 * time.Millisecond,
		SupabaseBucket:    "uploads",
		MaxUploadMB:       10,
	}
}

// newTestApp dựng router đầy đủ trên sqlite in-memory, đã seed role
func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	cfg := testConfig()
	r, db := newTestAppWithConfig(t, cfg)
	return r, db, cfg
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("mở sqlite lỗi: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate lỗi: %v", err)
	}
	for _, name := range []string{models.RoleAdmin, models.RoleTeacher, models.RoleStudent, models.RoleAIAssistant} {
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			t.Fatalf("seed role lỗi: %v", err)
		}
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRouter(r, db, cfg)
	return r, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, password, roleName string) *models.User {
	t.Helper()
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("không tìm thấy role %s: %v", roleName, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash mật khẩu lỗi: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
		RoleID:       role.ID,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("tạo user lỗi: %v", err)
	}
	user.Role = role
	return &user
}

func accessTokenFor(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, user.Role.Name, utils.TokenTypeAccess, cfg.AccessTokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken lỗi: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body lỗi: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("không parse được response %q: %v", w.Body.String(), err)
	}
	return body
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("mã trạng thái phải là %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
