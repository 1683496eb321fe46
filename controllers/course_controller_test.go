package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/vnkhanh/e-learning-backend/models"
)

func TestCourseCreateRequiresTeacher(t *testing.T) {
	r, db, cfg := newTestApp(t)
	student := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	teacher := createTestUser(t, db, "gv", "matkhau123", models.RoleTeacher)

	payload := map[string]interface{}{"title": "Python cơ bản", "category": "programming"}

	w := doJSON(t, r, http.MethodPost, "/api/v1/courses", accessTokenFor(t, cfg, student), payload)
	assertStatus(t, w, http.StatusForbidden)

	w = doJSON(t, r, http.MethodPost, "/api/v1/courses", accessTokenFor(t, cfg, teacher), payload)
	assertStatus(t, w, http.StatusCreated)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["teacher_id"].(float64) != float64(teacher.ID) {
		t.Fatalf("teacher_id phải là người tạo: %v", data)
	}
	if data["is_published"] != false {
		t.Fatal("khoá học mới tạo phải ở trạng thái nháp")
	}
}

func TestCourseVisibilityByRole(t *testing.T) {
	r, db, cfg := newTestApp(t)
	teacher := createTestUser(t, db, "gv", "matkhau123", models.RoleTeacher)
	otherTeacher := createTestUser(t, db, "gv2", "matkhau123", models.RoleTeacher)
	student := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)

	courses := []models.Course{
		{Title: "Đã publish", TeacherID: teacher.ID, IsPublished: true},
		{Title: "Bản nháp", TeacherID: teacher.ID, IsPublished: false},
	}
	for i := range courses {
		if err := db.Create(&courses[i]).Error; err != nil {
			t.Fatalf("tạo khoá học lỗi: %v", err)
		}
	}

	// Sinh viên chỉ thấy khoá đã publish
	w := doJSON(t, r, http.MethodGet, "/api/v1/courses", accessTokenFor(t, cfg, student), nil)
	assertStatus(t, w, http.StatusOK)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 1 {
		t.Fatalf("sinh viên phải thấy 1 khoá, got %d", got)
	}

	// Chủ khoá thấy cả bản nháp của mình
	w = doJSON(t, r, http.MethodGet, "/api/v1/courses", accessTokenFor(t, cfg, teacher), nil)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 2 {
		t.Fatalf("chủ khoá phải thấy 2 khoá, got %d", got)
	}

	// Giảng viên khác không thấy bản nháp của người khác
	w = doJSON(t, r, http.MethodGet, "/api/v1/courses", accessTokenFor(t, cfg, otherTeacher), nil)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 1 {
		t.Fatalf("giảng viên khác phải thấy 1 khoá, got %d", got)
	}

	// Sinh viên xem chi tiết bản nháp bị chặn
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", courses[1].ID), accessTokenFor(t, cfg, student), nil)
	assertStatus(t, w, http.StatusForbidden)
}

func TestCourseOwnership(t *testing.T) {
	r, db, cfg := newTestApp(t)
	owner := createTestUser(t, db, "chukhoa", "matkhau123", models.RoleTeacher)
	other := createTestUser(t, db, "gvkhac", "matkhau123", models.RoleTeacher)
	admin := createTestUser(t, db, "qtv", "matkhau123", models.RoleAdmin)

	course := models.Course{Title: "Khoá của owner", TeacherID: owner.ID}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("tạo khoá học lỗi: %v", err)
	}
	path := fmt.Sprintf("/api/v1/courses/%d", course.ID)

	// Giảng viên khác không sửa được
	w := doJSON(t, r, http.MethodPut, path, accessTokenFor(t, cfg, other), map[string]interface{}{"title": "Đổi tên"})
	assertStatus(t, w, http.StatusForbidden)

	// Chủ khoá sửa được
	w = doJSON(t, r, http.MethodPut, path, accessTokenFor(t, cfg, owner), map[string]interface{}{"title": "Tên mới"})
	assertStatus(t, w, http.StatusOK)

	// Admin publish được khoá của người khác
	w = doJSON(t, r, http.MethodPut, path+"/publish", accessTokenFor(t, cfg, admin), map[string]interface{}{"is_published": true})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Course
	db.First(&reloaded, "id = ?", course.ID)
	if reloaded.Title != "Tên mới" || !reloaded.IsPublished {
		t.Fatalf("cập nhật không được lưu: %+v", reloaded)
	}
}

func TestChapterAndVideoCRUD(t *testing.T) {
	r, db, cfg := newTestApp(t)
	teacher := createTestUser(t, db, "gv", "matkhau123", models.RoleTeacher)
	token := accessTokenFor(t, cfg, teacher)

	course := models.Course{Title: "Khoá học", TeacherID: teacher.ID, IsPublished: true}
	db.Create(&course)
	base := fmt.Sprintf("/api/v1/courses/%d", course.ID)

	// Tạo chương
	w := doJSON(t, r, http.MethodPost, base+"/chapters", token, map[string]interface{}{
		"title": "Chương 1", "order_index": 1,
	})
	assertStatus(t, w, http.StatusCreated)
	chapterID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	// Tạo video gắn vào chương
	w = doJSON(t, r, http.MethodPost, base+"/videos", token, map[string]interface{}{
		"title": "Bài 1", "chapter_id": chapterID, "duration": 600,
	})
	assertStatus(t, w, http.StatusCreated)
	videoID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	// Video gắn chương không thuộc khoá học bị chặn
	w = doJSON(t, r, http.MethodPost, base+"/videos", token, map[string]interface{}{
		"title": "Bài lỗi", "chapter_id": 9999,
	})
	assertStatus(t, w, http.StatusBadRequest)

	// Chi tiết khoá học trả đủ cây chương/video
	w = doJSON(t, r, http.MethodGet, base, token, nil)
	assertStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	chapters := data["chapters"].([]interface{})
	if len(chapters) != 1 {
		t.Fatalf("phải có 1 chương, got %d", len(chapters))
	}

	// Xoá video
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/videos/%.0f", videoID), token, nil)
	assertStatus(t, w, http.StatusOK)

	// Xoá chương
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/chapters/%.0f", base, chapterID), token, nil)
	assertStatus(t, w, http.StatusOK)
}

func TestProgressUpsertAndCompletion(t *testing.T) {
	r, db, cfg := newTestApp(t)
	teacher := createTestUser(t, db, "gv", "matkhau123", models.RoleTeacher)
	student := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, student)

	course := models.Course{Title: "Khoá học", TeacherID: teacher.ID, IsPublished: true}
	db.Create(&course)
	video := models.Video{CourseID: course.ID, Title: "Bài 1", Duration: 100}
	db.Create(&video)
	path := fmt.Sprintf("/api/v1/videos/%d/progress", video.ID)

	// Lần đầu: 50/100 giây, chưa hoàn thành
	w := doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{"progress": 50})
	assertStatus(t, w, http.StatusOK)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["completed"] != false {
		t.Fatalf("50%% chưa phải hoàn thành: %v", data)
	}

	// Lần hai: 96/100 giây, qua ngưỡng 95%
	w = doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{"progress": 96, "playback_rate": 1.5})
	assertStatus(t, w, http.StatusOK)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	if data["completed"] != true {
		t.Fatalf("96%% phải tính là hoàn thành: %v", data)
	}
	if data["playback_rate"].(float64) != 1.5 {
		t.Fatalf("playback_rate phải được lưu: %v", data)
	}

	// Upsert: chỉ có một dòng progress cho cặp (user, video)
	var count int64
	db.Model(&models.Progress{}).Where("user_id = ? AND video_id = ?", student.ID, video.ID).Count(&count)
	if count != 1 {
		t.Fatalf("phải có đúng 1 dòng progress, got %d", count)
	}

	// Tua lùi không làm mất trạng thái hoàn thành
	w = doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{"progress": 10})
	data = decodeBody(t, w)["data"].(map[string]interface{})
	if data["completed"] != true {
		t.Fatalf("đã hoàn thành thì giữ nguyên: %v", data)
	}

	// GET progress của chính mình
	w = doJSON(t, r, http.MethodGet, path, token, nil)
	assertStatus(t, w, http.StatusOK)
}

func TestListProgressOwnRowsOnly(t *testing.T) {
	r, db, cfg := newTestApp(t)
	teacher := createTestUser(t, db, "gv", "matkhau123", models.RoleTeacher)
	student := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	other := createTestUser(t, db, "sv2", "matkhau123", models.RoleStudent)

	course := models.Course{Title: "Khoá học", TeacherID: teacher.ID, IsPublished: true}
	db.Create(&course)
	videos := []models.Video{
		{CourseID: course.ID, Title: "Bài 1", Duration: 100},
		{CourseID: course.ID, Title: "Bài 2", Duration: 200},
	}
	for i := range videos {
		db.Create(&videos[i])
	}
	for _, p := range []models.Progress{
		{UserID: student.ID, VideoID: videos[0].ID, Progress: 30},
		{UserID: student.ID, VideoID: videos[1].ID, Progress: 50},
		{UserID: other.ID, VideoID: videos[0].ID, Progress: 99},
	} {
		db.Create(&p)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/progress", accessTokenFor(t, cfg, student), nil)
	assertStatus(t, w, http.StatusOK)
	rows := decodeBody(t, w)["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("chỉ trả tiến độ của chính user, got %d dòng", len(rows))
	}
	for _, raw := range rows {
		row := raw.(map[string]interface{})
		if row["user_id"].(float64) != float64(student.ID) {
			t.Fatalf("lẫn tiến độ của user khác: %v", row)
		}
	}
}

func TestNotesCRUD(t *testing.T) {
	r, db, cfg := newTestApp(t)
	teacher := createTestUser(t, db, "gv", "matkhau123", models.RoleTeacher)
	student := createTestUser(t, db, "sv", "matkhau123", models.RoleStudent)
	other := createTestUser(t, db, "sv2", "matkhau123", models.RoleStudent)
	token := accessTokenFor(t, cfg, student)

	course := models.Course{Title: "Khoá học", TeacherID: teacher.ID, IsPublished: true}
	db.Create(&course)
	video := models.Video{CourseID: course.ID, Title: "Bài 1", Duration: 100}
	db.Create(&video)
	base := fmt.Sprintf("/api/v1/videos/%d/notes", video.ID)

	// Tạo ghi chú
	w := doJSON(t, r, http.MethodPost, base, token, map[string]interface{}{
		"content": "Chỗ này quan trọng", "timestamp": 42,
	})
	assertStatus(t, w, http.StatusCreated)
	noteID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	// Ghi chú là riêng tư theo user
	w = doJSON(t, r, http.MethodGet, base, accessTokenFor(t, cfg, other), nil)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 0 {
		t.Fatalf("user khác không được thấy ghi chú, got %d", got)
	}
	w = doJSON(t, r, http.MethodGet, base, token, nil)
	if got := len(decodeBody(t, w)["data"].([]interface{})); got != 1 {
		t.Fatalf("chủ ghi chú phải thấy 1 ghi chú, got %d", got)
	}

	// User khác không sửa/xoá được
	notePath := fmt.Sprintf("%s/%.0f", base, noteID)
	w = doJSON(t, r, http.MethodPut, notePath, accessTokenFor(t, cfg, other), map[string]interface{}{"content": "Sửa trộm"})
	assertStatus(t, w, http.StatusNotFound)

	// Chủ ghi chú sửa được
	w = doJSON(t, r, http.MethodPut, notePath, token, map[string]interface{}{"content": "Đã sửa", "timestamp": 50})
	assertStatus(t, w, http.StatusOK)

	// Và xoá được
	w = doJSON(t, r, http.MethodDelete, notePath, token, nil)
	assertStatus(t, w, http.StatusOK)
	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 0 {
		t.Fatalf("ghi chú phải bị xoá, còn %d", count)
	}
}
