package controllers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health kiểm tra cả kết nối database
func Health(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	dbStatus := "ok"
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "error"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":   "running",
			"database": dbStatus,
			"uptime":   time.Since(startTime).String(),
		},
	})
}

// SystemInfo cho route cũ /api/system-info
func SystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"name":       "e-learning-backend",
			"version":    "1.0.0",
			"go_version": runtime.Version(),
			"time":       time.Now().UTC(),
		},
	})
}

// Test cho route cũ /api/test
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "API hoạt động bình thường"})
}
