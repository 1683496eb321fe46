package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/models"
)

// RequireRoles chỉ cho qua khi vai trò của user nằm trong danh sách.
// Phải chạy sau AuthMiddleware.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Không xác định được vai trò người dùng"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi xử lý vai trò người dùng"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Bạn không có quyền truy cập tài nguyên này"})
		c.Abort()
	}
}

// RequireAdmin: nhóm vai trò quản trị nội dung
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleAIAssistant)
}

// RequireTeacher: giảng viên hoặc admin
func RequireTeacher() gin.HandlerFunc {
	return RequireRoles(models.RoleTeacher, models.RoleAdmin)
}
