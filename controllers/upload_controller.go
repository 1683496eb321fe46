package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/utils"
)

type UploadController struct {
	Cfg *config.Config
}

// Phần mở rộng hợp lệ theo loại upload
var allowedExtensions = map[string]map[string]bool{
	"video":    {".mp4": true, ".webm": true, ".mov": true, ".mkv": true},
	"document": {".pdf": true, ".docx": true, ".txt": true, ".pptx": true},
	"image":    {".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true},
}

// Upload file lên Supabase Storage, tên file là uuid để tránh trùng
func (u *UploadController) Upload(c *gin.Context) {
	kind := c.Param("kind")
	allowed, ok := allowedExtensions[kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Loại upload phải là video, document hoặc image"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu file"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowed[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Định dạng file không được hỗ trợ: " + ext})
		return
	}

	maxBytes := u.Cfg.MaxUploadMB * 1024 * 1024
	if fileHeader.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File vượt quá dung lượng cho phép"})
		return
	}

	fileID := uuid.New().String()
	url, err := utils.UploadFileToSupabase(u.Cfg.SupabaseURL, u.Cfg.SupabaseKey, u.Cfg.SupabaseBucket, kind, fileHeader, fileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi upload file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"url":      url,
		"file_id":  fileID,
		"kind":     kind,
		"filename": fileHeader.Filename,
		"size":     fileHeader.Size,
	}})
}
