package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config gom toàn bộ thiết lập của hệ thống, đọc một lần lúc khởi động
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret      string
	AccessTokenTTL time.Duration
	RefreshTTL     time.Duration

	DeepSeekAPIKey string
	DeepSeekAPIURL string
	DeepSeekModel  string
	AITimeout      time.Duration

	SimilarityURL     string
	SimilarityTimeout time.Duration

	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID string

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
	MaxUploadMB    int64
}

// Load đọc cấu hình từ biến môi trường (file .env đã được godotenv nạp trước đó)
func Load() *Config {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("JWT_ACCESS_TTL_MIN", 60)
	viper.SetDefault("JWT_REFRESH_TTL_HOUR", 720)
	viper.SetDefault("DEEPSEEK_API_URL", "https://api.deepseek.com/v1")
	viper.SetDefault("DEEPSEEK_MODEL", "deepseek-chat")
	viper.SetDefault("AI_TIMEOUT_SEC", 30)
	viper.SetDefault("SIMILARITY_URL", "http://localhost:5001")
	viper.SetDefault("SIMILARITY_TIMEOUT_SEC", 10)
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("SUPABASE_BUCKET", "uploads")
	viper.SetDefault("MAX_UPLOAD_MB", 100)

	return &Config{
		Port: viper.GetString("PORT"),

		DBHost:     viper.GetString("DB_HOST"),
		DBPort:     viper.GetString("DB_PORT"),
		DBUser:     viper.GetString("DB_USER"),
		DBPassword: viper.GetString("DB_PASSWORD"),
		DBName:     viper.GetString("DB_NAME"),

		JWTSecret:      viper.GetString("JWT_SECRET"),
		AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TTL_MIN")) * time.Minute,
		RefreshTTL:     time.Duration(viper.GetInt("JWT_REFRESH_TTL_HOUR")) * time.Hour,

		DeepSeekAPIKey: viper.GetString("DEEPSEEK_API_KEY"),
		DeepSeekAPIURL: viper.GetString("DEEPSEEK_API_URL"),
		DeepSeekModel:  viper.GetString("DEEPSEEK_MODEL"),
		AITimeout:      time.Duration(viper.GetInt("AI_TIMEOUT_SEC")) * time.Second,

		SimilarityURL:     viper.GetString("SIMILARITY_URL"),
		SimilarityTimeout: time.Duration(viper.GetInt("SIMILARITY_TIMEOUT_SEC")) * time.Second,

		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
		GeminiModel:  viper.GetString("GEMINI_MODEL"),

		GoogleClientID: viper.GetString("GOOGLE_CLIENT_ID"),

		SupabaseURL:    viper.GetString("SUPABASE_URL"),
		SupabaseKey:    viper.GetString("SUPABASE_KEY"),
		SupabaseBucket: viper.GetString("SUPABASE_BUCKET"),
		MaxUploadMB:    viper.GetInt64("MAX_UPLOAD_MB"),
	}
}

// DSN dựng chuỗi kết nối PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
