package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

// ====== COURSES ======

// Danh sách khoá học. Sinh viên chỉ thấy khoá đã publish,
// giảng viên thấy thêm khoá của chính mình, admin thấy tất cả.
func GetCourses(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)
	role := c.MustGet("role").(string)

	query := db.Order("id asc")
	switch role {
	case models.RoleAdmin:
		// không lọc
	case models.RoleTeacher:
		query = query.Where("is_published = ? OR teacher_id = ?", true, userID)
	default:
		query = query.Where("is_published = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn khoá học"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": courses, "total": len(courses)})
}

// Chi tiết khoá học kèm chương và video, sắp theo order_index
func GetCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return
	}

	var course models.Course
	err = db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Chapters.Videos", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		First(&course, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy khoá học"})
		return
	}

	role := c.MustGet("role").(string)
	userID := c.MustGet("user_id").(uint)
	if !course.IsPublished && role != models.RoleAdmin && course.TeacherID != userID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Khoá học chưa được công khai"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": course})
}

type CourseInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Level       string  `json:"level"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

func CreateCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.MustGet("user_id").(uint)

	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu tiêu đề khoá học"})
		return
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		TeacherID:   userID,
		Category:    input.Category,
		Level:       input.Level,
		Duration:    input.Duration,
		Price:       input.Price,
	}
	if err := db.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi tạo khoá học"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Tạo khoá học thành công", "data": course})
}

// Chỉ giảng viên sở hữu hoặc admin mới được sửa/xoá khoá học
func courseForWrite(c *gin.Context, db *gorm.DB) (*models.Course, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return nil, false
	}

	var course models.Course
	if err := db.First(&course, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy khoá học"})
		return nil, false
	}

	userID := c.MustGet("user_id").(uint)
	role := c.MustGet("role").(string)
	if role != models.RoleAdmin && course.TeacherID != userID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Bạn không có quyền trên khoá học này"})
		return nil, false
	}
	return &course, true
}

func UpdateCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu gửi lên không hợp lệ"})
		return
	}

	allowed := map[string]bool{
		"title": true, "description": true, "category": true,
		"level": true, "duration": true, "price": true,
	}
	updates := map[string]interface{}{}
	for k, v := range input {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Không có trường nào để cập nhật"})
		return
	}

	if err := db.Model(course).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật khoá học"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cập nhật thành công", "data": course})
}

func DeleteCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}
	if err := db.Select("Chapters", "Videos").Delete(course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi xoá khoá học"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Xoá khoá học thành công"})
}

type PublishInput struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

func PublishCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}

	var input PublishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu is_published"})
		return
	}

	if err := db.Model(course).Update("is_published", *input.IsPublished).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật trạng thái"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": course.ID, "is_published": *input.IsPublished}})
}

// ====== CHAPTERS ======

type ChapterInput struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"order_index"`
}

func CreateChapter(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}

	var input ChapterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu tiêu đề chương"})
		return
	}

	chapter := models.Chapter{
		CourseID:   course.ID,
		Title:      input.Title,
		OrderIndex: input.OrderIndex,
	}
	if err := db.Create(&chapter).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi tạo chương"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": chapter})
}

func UpdateChapter(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}

	chapterID, err := strconv.ParseUint(c.Param("chapterId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID chương không hợp lệ"})
		return
	}

	var chapter models.Chapter
	if err := db.Where("id = ? AND course_id = ?", chapterID, course.ID).First(&chapter).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy chương"})
		return
	}

	var input ChapterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu tiêu đề chương"})
		return
	}

	updates := map[string]interface{}{"title": input.Title, "order_index": input.OrderIndex}
	if err := db.Model(&chapter).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật chương"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": chapter})
}

func DeleteChapter(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}

	chapterID, err := strconv.ParseUint(c.Param("chapterId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID chương không hợp lệ"})
		return
	}

	result := db.Where("id = ? AND course_id = ?", chapterID, course.ID).Delete(&models.Chapter{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi xoá chương"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy chương"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Xoá chương thành công"})
}

// ====== VIDEOS ======

type VideoInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	ChapterID   uint   `json:"chapter_id"`
	Duration    int    `json:"duration"`
	OrderIndex  int    `json:"order_index"`
	IsFree      bool   `json:"is_free"`
}

func CreateVideo(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	course, ok := courseForWrite(c, db)
	if !ok {
		return
	}

	var input VideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu tiêu đề video"})
		return
	}

	if input.ChapterID != 0 {
		var chapter models.Chapter
		if err := db.Where("id = ? AND course_id = ?", input.ChapterID, course.ID).First(&chapter).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Chương không thuộc khoá học này"})
			return
		}
	}

	video := models.Video{
		CourseID:    course.ID,
		ChapterID:   input.ChapterID,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Duration:    input.Duration,
		OrderIndex:  input.OrderIndex,
		IsFree:      input.IsFree,
	}
	if err := db.Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi tạo video"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": video})
}

func GetVideo(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return
	}

	var video models.Video
	if err := db.First(&video, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy video"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": video})
}

func UpdateVideo(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	video, ok := videoForWrite(c, db)
	if !ok {
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu gửi lên không hợp lệ"})
		return
	}

	allowed := map[string]bool{
		"title": true, "description": true, "video_url": true,
		"duration": true, "order_index": true, "is_free": true, "chapter_id": true,
	}
	updates := map[string]interface{}{}
	for k, v := range input {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Không có trường nào để cập nhật"})
		return
	}

	if err := db.Model(video).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật video"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": video})
}

func DeleteVideo(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	video, ok := videoForWrite(c, db)
	if !ok {
		return
	}
	if err := db.Delete(video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi xoá video"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Xoá video thành công"})
}

// videoForWrite load video theo :id và kiểm tra quyền qua khoá học chứa nó
func videoForWrite(c *gin.Context, db *gorm.DB) (*models.Video, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return nil, false
	}

	var video models.Video
	if err := db.First(&video, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy video"})
		return nil, false
	}

	var course models.Course
	if err := db.First(&course, "id = ?", video.CourseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy khoá học của video"})
		return nil, false
	}

	userID := c.MustGet("user_id").(uint)
	role := c.MustGet("role").(string)
	if role != models.RoleAdmin && course.TeacherID != userID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Bạn không có quyền trên video này"})
		return nil, false
	}
	return &video, true
}
