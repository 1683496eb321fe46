package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

// Danh sách user, chỉ admin. Hỗ trợ lọc theo role và tìm kiếm.
func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Preload("Role").Order("users.id asc")
	if roleName := c.Query("role"); roleName != "" {
		query = query.Joins("JOIN roles ON roles.id = users.role_id").
			Where("roles.name = ?", roleName)
	}
	if keyword := strings.TrimSpace(c.Query("q")); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR real_name LIKE ?", like, like, like)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi truy vấn người dùng"})
		return
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out, "total": len(out)})
}

func GetUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return
	}

	var user models.User
	if err := db.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy người dùng"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user.Public()})
}

// Alias của /auth/me cho route cũ /user/current
func GetCurrentUser(c *gin.Context) {
	user := c.MustGet("current_user").(*models.User)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user.Public()})
}

type UpdateUserInput struct {
	RealName *string `json:"real_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Gender   *string `json:"gender"`
}

// Cập nhật hồ sơ: tự sửa của mình, hoặc admin sửa bất kỳ ai.
// Chỉ cho phép đổi các trường hồ sơ, không đổi role/password ở đây.
func UpdateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	currentID := c.MustGet("user_id").(uint)
	role := c.MustGet("role").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID không hợp lệ"})
		return
	}
	if uint(id) != currentID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Bạn không có quyền sửa người dùng này"})
		return
	}

	var user models.User
	if err := db.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Không tìm thấy người dùng"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu gửi lên không hợp lệ"})
		return
	}

	updates := map[string]interface{}{}
	if input.RealName != nil {
		updates["real_name"] = *input.RealName
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !emailPattern.MatchString(email) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email không đúng định dạng"})
			return
		}
		var existing models.User
		if err := db.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email đã được đăng ký"})
			return
		}
		updates["email"] = email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Gender != nil {
		updates["gender"] = *input.Gender
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Không có trường nào để cập nhật"})
		return
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cập nhật thành công", "data": user.Public()})
}
