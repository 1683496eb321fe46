package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/controllers"
	"github.com/vnkhanh/e-learning-backend/middleware"
	"github.com/vnkhanh/e-learning-backend/services"
)

// SetupRouter đăng ký toàn bộ route. Nhóm chính nằm dưới /api/v1,
// các route cũ giữ nguyên path và trỏ vào cùng handler.
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.DB(db))

	auth := &controllers.AuthController{Cfg: cfg}
	subtitle := &controllers.SubtitleController{Cfg: cfg}
	upload := &controllers.UploadController{Cfg: cfg}
	quiz := &controllers.QuizController{
		Grader: services.NewGrader(db, services.NewSimilarityClient(cfg.SimilarityURL, cfg.SimilarityTimeout)),
	}
	ai := &controllers.AIController{
		Client: services.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL, cfg.DeepSeekModel, cfg.AITimeout),
	}

	authRequired := middleware.AuthMiddleware(db, cfg.JWTSecret)

	r.GET("/ping", controllers.Ping)
	r.GET("/health", controllers.Health)

	v1 := r.Group("/api/v1")
	{
		// ====== AUTH ======
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", auth.Register)
			authGroup.POST("/login", auth.Login)
			authGroup.POST("/refresh", auth.Refresh)
			authGroup.POST("/google-login", auth.GoogleLogin)
			authGroup.GET("/check-username", auth.CheckUsername)
			authGroup.GET("/check-email", auth.CheckEmail)

			authGroup.GET("/me", authRequired, auth.Me)
			authGroup.POST("/logout", authRequired, auth.Logout)
			authGroup.POST("/change-password", authRequired, auth.ChangePassword)
		}

		// ====== USERS ======
		users := v1.Group("/users", authRequired)
		{
			users.GET("", middleware.RequireAdmin(), controllers.GetUsers)
			users.GET("/current", controllers.GetCurrentUser)
			users.GET("/:id", controllers.GetUser)
			users.PUT("/:id", controllers.UpdateUser)
		}

		// ====== COURSES ======
		courses := v1.Group("/courses", authRequired)
		{
			courses.GET("", controllers.GetCourses)
			courses.GET("/:id", controllers.GetCourse)
			courses.POST("", middleware.RequireTeacher(), controllers.CreateCourse)
			courses.PUT("/:id", middleware.RequireTeacher(), controllers.UpdateCourse)
			courses.DELETE("/:id", middleware.RequireTeacher(), controllers.DeleteCourse)
			courses.PUT("/:id/publish", middleware.RequireTeacher(), controllers.PublishCourse)

			courses.POST("/:id/chapters", middleware.RequireTeacher(), controllers.CreateChapter)
			courses.PUT("/:id/chapters/:chapterId", middleware.RequireTeacher(), controllers.UpdateChapter)
			courses.DELETE("/:id/chapters/:chapterId", middleware.RequireTeacher(), controllers.DeleteChapter)

			courses.POST("/:id/videos", middleware.RequireTeacher(), controllers.CreateVideo)
		}

		// ====== VIDEOS ======
		videos := v1.Group("/videos", authRequired)
		{
			videos.GET("/:id", controllers.GetVideo)
			videos.PUT("/:id", middleware.RequireTeacher(), controllers.UpdateVideo)
			videos.DELETE("/:id", middleware.RequireTeacher(), controllers.DeleteVideo)

			videos.GET("/:id/progress", controllers.GetProgress)
			videos.POST("/:id/progress", controllers.SaveProgress)

			videos.GET("/:id/notes", controllers.GetNotes)
			videos.POST("/:id/notes", controllers.CreateNote)
			videos.PUT("/:id/notes/:noteId", controllers.UpdateNote)
			videos.DELETE("/:id/notes/:noteId", controllers.DeleteNote)

			videos.POST("/:id/subtitles/translate", subtitle.Translate)
		}

		v1.GET("/progress", authRequired, controllers.ListProgress)

		// ====== QUIZ ======
		quizGroup := v1.Group("/quiz", authRequired)
		{
			quizGroup.GET("/questions", quiz.GetQuestions)
			quizGroup.POST("/submit", quiz.Submit)
			quizGroup.GET("/submissions", quiz.GetSubmissions)
			quizGroup.GET("/statistics", quiz.GetStatistics)
		}

		// ====== AI ======
		aiGroup := v1.Group("/ai", authRequired)
		{
			aiGroup.POST("/chat", ai.Chat)
			aiGroup.POST("/ppt/generate", ai.GeneratePPT)
			aiGroup.POST("/quiz/generate", ai.GenerateQuiz)
			aiGroup.POST("/quiz/generate-from-document", ai.GenerateQuizFromDocument)
			aiGroup.POST("/analyze", ai.Analyze)
			aiGroup.GET("/status", ai.Status)
			aiGroup.GET("/health", ai.Health)
		}

		// ====== UPLOADS ======
		v1.POST("/uploads/:kind", authRequired, middleware.RequireTeacher(), upload.Upload)
	}

	// ====== ROUTE CŨ (giữ tương thích frontend bản trước) ======
	legacy := r.Group("/api")
	{
		legacy.POST("/auth/login", auth.Login)
		legacy.GET("/auth/me", authRequired, auth.Me)
		legacy.POST("/auth/logout", authRequired, auth.Logout)
		legacy.GET("/user/current", authRequired, controllers.GetCurrentUser)

		legacy.GET("/quiz/questions", authRequired, quiz.GetQuestions)
		legacy.POST("/quiz/submit", authRequired, quiz.Submit)

		legacy.GET("/ai/status", authRequired, ai.Status)
		legacy.POST("/ai/chat", authRequired, ai.Chat)
		legacy.POST("/ai/ppt/generate", authRequired, ai.GeneratePPT)
		legacy.POST("/ai/quiz/generate", authRequired, ai.GenerateQuiz)
		legacy.POST("/ai/analyze", authRequired, ai.Analyze)

		legacy.GET("/system-info", controllers.SystemInfo)
		legacy.GET("/test", controllers.Test)
	}
}
