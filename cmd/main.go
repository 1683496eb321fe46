package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/routes"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatal("Không kết nối được database: ", err)
	}
	if err := config.Seed(db); err != nil {
		log.Fatal("Lỗi khi seed dữ liệu: ", err)
	}

	r := gin.Default()

	//Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Auth-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Gọi SetupRouter để đăng ký route
	routes.SetupRouter(r, db, cfg)

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "E-learning server is running")
	})

	log.Println("Server running at Port:" + cfg.Port)
	r.Run(":" + cfg.Port)
}
