package utils_test

import (
	"testing"
	"time"

	"github.com/vnkhanh/e-learning-backend/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := utils.GenerateToken("secret", 42, "student", utils.TokenTypeAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken lỗi: %v", err)
	}

	claims, err := utils.VerifyToken("secret", token)
	if err != nil {
		t.Fatalf("VerifyToken lỗi: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "student" || claims.TokenType != utils.TokenTypeAccess {
		t.Fatalf("claims không đúng: %+v", claims)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken("secret", 1, "admin", utils.TokenTypeAccess, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken lỗi: %v", err)
	}
	if _, err := utils.VerifyToken("secret-khac", token); err == nil {
		t.Fatal("secret sai phải bị từ chối")
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := utils.GenerateToken("secret", 1, "admin", utils.TokenTypeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken lỗi: %v", err)
	}
	if _, err := utils.VerifyToken("secret", token); err == nil {
		t.Fatal("token hết hạn phải bị từ chối")
	}
}

func TestGenerateTokenPair(t *testing.T) {
	pair, err := utils.GenerateTokenPair("secret", 9, "teacher", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateTokenPair lỗi: %v", err)
	}

	access, err := utils.VerifyToken("secret", pair.AccessToken)
	if err != nil {
		t.Fatalf("access token không hợp lệ: %v", err)
	}
	if access.TokenType != utils.TokenTypeAccess {
		t.Fatalf("loại token không đúng: %q", access.TokenType)
	}

	refresh, err := utils.VerifyToken("secret", pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token không hợp lệ: %v", err)
	}
	if refresh.TokenType != utils.TokenTypeRefresh {
		t.Fatalf("loại token không đúng: %q", refresh.TokenType)
	}
	if refresh.UserID != 9 || refresh.Role != "teacher" {
		t.Fatalf("claims không đúng: %+v", refresh)
	}
}
