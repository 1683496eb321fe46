package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/utils"
)

// AuthMiddleware xác thực Bearer token, nạp user từ DB và gắn vào context.
// User đã bị xoá trả 404, tài khoản bị khoá trả 403.
func AuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Thử Authorization header trước
		authHeader := c.GetHeader("Authorization")

		// Nếu không có, thử X-Auth-Token (cho client cũ)
		if authHeader == "" {
			authHeader = c.GetHeader("X-Auth-Token")
		}

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Thiếu Authorization header"})
			c.Abort()
			return
		}

		// Tách token khỏi chuỗi "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header không hợp lệ"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(secret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token không hợp lệ hoặc hết hạn"})
			c.Abort()
			return
		}
		if claims.TokenType != utils.TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Cần access token, không phải refresh token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Preload("Role").First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Người dùng không tồn tại"})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Tài khoản đã bị khoá"})
			c.Abort()
			return
		}

		// Lưu thông tin vào context để controller dùng
		c.Set("user_id", user.ID)
		c.Set("role", user.Role.Name)
		c.Set("current_user", &user)
		c.Next()
	}
}
