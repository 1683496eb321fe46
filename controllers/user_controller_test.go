package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/vnkhanh/e-learning-backend/models"
)

func TestGetUsersAdminOnly(t *testing.T) {
	r, db, cfg := newTestApp(t)
	student := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	admin := createTestUser(t, db, "qtv", "matkhau123", models.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users", accessTokenFor(t, cfg, student), nil)
	assertStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, http.MethodGet, "/api/v1/users", accessTokenFor(t, cfg, admin), nil)
	assertStatus(t, w, http.StatusOK)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 2 {
		t.Fatalf("phải liệt kê 2 user, got %d", got)
	}
}

func TestGetUsersFilterByRole(t *testing.T) {
	r, db, cfg := newTestApp(t)
	admin := createTestUser(t, db, "qtv", "matkhau123", models.RoleAdmin)
	createTestUser(t, db, "sv1", "matkhau123", models.RoleStudent)
	createTestUser(t, db, "sv2", "matkhau123", models.RoleStudent)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users?role=student", accessTokenFor(t, cfg, admin), nil)
	assertStatus(t, w, http.StatusOK)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 2 {
		t.Fatalf("lọc theo role student phải ra 2 user, got %d", got)
	}

	// Lọc role kết hợp tìm kiếm vẫn phải chạy được (join + order by)
	w = doJSON(t, r, http.MethodGet, "/api/v1/users?role=student&q=sv1", accessTokenFor(t, cfg, admin), nil)
	assertStatus(t, w, http.StatusOK)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 1 {
		t.Fatalf("lọc role + từ khoá phải ra 1 user, got %d", got)
	}
}

func TestUpdateUserPermissions(t *testing.T) {
	r, db, cfg := newTestApp(t)
	user := createTestUser(t, db, "chinhchu", "matkhau123", models.RoleStudent)
	other := createTestUser(t, db, "nguoikhac", "matkhau123", models.RoleStudent)
	admin := createTestUser(t, db, "qtv", "matkhau123", models.RoleAdmin)
	path := fmt.Sprintf("/api/v1/users/%d", user.ID)

	// User khác không sửa được
	w := doJSON(t, r, http.MethodPut, path, accessTokenFor(t, cfg, other), map[string]interface{}{
		"real_name": "Tên trộm",
	})
	assertStatus(t, w, http.StatusForbidden)

	// Tự sửa hồ sơ của mình
	w = doJSON(t, r, http.MethodPut, path, accessTokenFor(t, cfg, user), map[string]interface{}{
		"real_name": "Nguyễn Văn A", "phone": "0901234567",
	})
	assertStatus(t, w, http.StatusOK)

	// Admin sửa được bất kỳ ai
	w = doJSON(t, r, http.MethodPut, path, accessTokenFor(t, cfg, admin), map[string]interface{}{
		"gender": "male",
	})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.User
	db.First(&reloaded, "id = ?", user.ID)
	if reloaded.RealName != "Nguyễn Văn A" || reloaded.Phone != "0901234567" || reloaded.Gender != "male" {
		t.Fatalf("hồ sơ không được lưu: %+v", reloaded)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	r, db, cfg := newTestApp(t)
	user := createTestUser(t, db, "usera", "matkhau123", models.RoleStudent)
	createTestUser(t, db, "userb", "matkhau123", models.RoleStudent)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", user.ID),
		accessTokenFor(t, cfg, user), map[string]interface{}{
			"email": "userb@example.com",
		})
	assertStatus(t, w, http.StatusConflict)
}

func TestCurrentUserAliases(t *testing.T) {
	r, db, cfg := newTestApp(t)
	user := createTestUser(t, db, "hientai", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, user)

	for _, path := range []string{"/api/v1/users/current", "/api/user/current"} {
		w := doJSON(t, r, http.MethodGet, path, token, nil)
		assertStatus(t, w, http.StatusOK)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["username"] != "hientai" {
			t.Fatalf("%s trả sai user: %v", path, data)
		}
	}
}
