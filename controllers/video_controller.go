package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

// ====== PROGRESS ======

type ProgressInput struct {
	Progress     int      `json:"progress"`
	PlaybackRate *float64 `json:"playback_rate"`
}

// Upsert tiến độ xem theo cặp (user, video). Xem từ 95% thời lượng
// trở lên thì tính là hoàn thành.
func SaveProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID video không hợp lệ"})
		return
	}

	var video models.Video
	if err := db.First(&video, "id = ?", videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy video"})
		return
	}

	var input ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Progress < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tiến độ không hợp lệ"})
		return
	}

	completed := video.Duration > 0 && float64(input.Progress) >= float64(video.Duration)*0.95

	var progress models.Progress
	err = db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.Progress{
			UserID:       userID,
			VideoID:      uint(videoID),
			Progress:     input.Progress,
			Completed:    completed,
			PlaybackRate: 1,
		}
		if input.PlaybackRate != nil {
			progress.PlaybackRate = *input.PlaybackRate
		}
		if err := db.Create(&progress).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi lưu tiến độ"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn tiến độ"})
		return
	} else {
		updates := map[string]interface{}{
			"progress":  input.Progress,
			"completed": completed || progress.Completed, // đã hoàn thành thì giữ nguyên
		}
		if input.PlaybackRate != nil {
			updates["playback_rate"] = *input.PlaybackRate
		}
		if err := db.Model(&progress).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật tiến độ"})
			return
		}
		db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&progress)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": progress})
}

func GetProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID video không hợp lệ"})
		return
	}

	var progress models.Progress
	if err := db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&progress).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"video_id": videoID, "progress": 0, "completed": false, "playback_rate": 1,
		}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": progress})
}

// Toàn bộ tiến độ xem của user hiện tại, video mới xem trước
func ListProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	var progresses []models.Progress
	if err := db.Where("user_id = ?", userID).
		Order("updated_at desc").Find(&progresses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn tiến độ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": progresses, "total": len(progresses)})
}

// ====== NOTES ======

type NoteInput struct {
	Content   string `json:"content" binding:"required"`
	Timestamp int    `json:"timestamp"`
	Summary   string `json:"summary"`
}

func GetNotes(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID video không hợp lệ"})
		return
	}

	var notes []models.Note
	if err := db.Where("user_id = ? AND video_id = ?", userID, videoID).
		Order("timestamp asc").Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn ghi chú"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": notes, "total": len(notes)})
}

func CreateNote(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID video không hợp lệ"})
		return
	}

	var video models.Video
	if err := db.First(&video, "id = ?", videoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy video"})
		return
	}

	var input NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nội dung ghi chú không được để trống"})
		return
	}

	note := models.Note{
		UserID:    userID,
		VideoID:   uint(videoID),
		Content:   input.Content,
		Timestamp: input.Timestamp,
		Summary:   input.Summary,
	}
	if err := db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi tạo ghi chú"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": note})
}

func UpdateNote(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	noteID, err := strconv.ParseUint(c.Param("noteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID ghi chú không hợp lệ"})
		return
	}

	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy ghi chú"})
		return
	}

	var input NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nội dung ghi chú không được để trống"})
		return
	}

	updates := map[string]interface{}{
		"content":   input.Content,
		"timestamp": input.Timestamp,
		"summary":   input.Summary,
	}
	if err := db.Model(&note).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật ghi chú"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": note})
}

func DeleteNote(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	noteID, err := strconv.ParseUint(c.Param("noteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID ghi chú không hợp lệ"})
		return
	}

	result := db.Where("id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi xoá ghi chú"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy ghi chú"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Xoá ghi chú thành công"})
}

// ====== SUBTITLE TRANSLATION ======

type SubtitleController struct {
	Cfg *config.Config
}

type TranslateInput struct {
	Text       string `json:"text" binding:"required"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang" binding:"required"`
}

// Dịch phụ đề: tra cache trong DB trước, miss thì gọi Gemini rồi lưu lại.
// Gemini lỗi thì trả 503 để client hiển thị bản gốc.
func (s *SubtitleController) Translate(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID video không hợp lệ"})
		return
	}

	var input TranslateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu text hoặc target_lang"})
		return
	}
	if input.SourceLang == "" {
		input.SourceLang = "auto"
	}

	var cached models.SubtitleTranslation
	err = db.Where("video_id = ? AND source_lang = ? AND target_lang = ? AND original_text = ?",
		videoID, input.SourceLang, input.TargetLang, input.Text).First(&cached).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"translated_text": cached.TranslatedText,
			"cached":          true,
		}})
		return
	}

	prompt := fmt.Sprintf(
		"Dịch đoạn phụ đề sau sang ngôn ngữ %q, chỉ trả về bản dịch, không giải thích:\n\n%s",
		input.TargetLang, input.Text,
	)
	translated, err := services.GeminiGenerateText(c, s.Cfg.GeminiAPIKey, s.Cfg.GeminiModel, prompt)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Dịch vụ dịch tạm thời không khả dụng"})
		return
	}

	record := models.SubtitleTranslation{
		VideoID:        uint(videoID),
		SourceLang:     input.SourceLang,
		TargetLang:     input.TargetLang,
		OriginalText:   input.Text,
		TranslatedText: translated,
	}
	if err := db.Create(&record).Error; err != nil {
		// cache miss không chặn response
		log.Println("không lưu được cache dịch phụ đề:", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"translated_text": translated,
		"cached":          false,
	}})
}
