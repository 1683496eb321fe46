package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DB gắn handle database vào context, controller lấy ra bằng c.MustGet("db")
func DB(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}
