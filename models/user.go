package models

import (
	"time"
)

// Tên vai trò chuẩn trong hệ thống
const (
	RoleAdmin       = "admin"        // Quản trị hệ thống
	RoleTeacher     = "teacher"      // Giảng viên (quản trị nội dung)
	RoleStudent     = "student"      // Sinh viên (người dùng)
	RoleAIAssistant = "ai_assistant" // Tài khoản dịch vụ AI
)

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"size:100" json:"display_name"`
	Description string `gorm:"type:text" json:"description"`
	Permissions string `gorm:"type:text" json:"permissions"`
}

// Permission là dữ liệu tham chiếu, chỉ seed lúc khởi động
type Permission struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Code   string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Module string `gorm:"size:50" json:"module"`
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:256;not null" json:"-"`
	RealName     string `gorm:"size:100" json:"real_name"`

	RoleID uint `gorm:"index" json:"role_id"`
	Role   Role `gorm:"foreignKey:RoleID" json:"role"`

	StudentID  string `gorm:"size:50" json:"student_id"`
	EmployeeID string `gorm:"size:50" json:"employee_id"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`
	IsTeacher  bool `gorm:"default:false" json:"is_teacher"`

	Avatar string `gorm:"size:200" json:"avatar"`
	Phone  string `gorm:"size:20" json:"phone"`
	Gender string `gorm:"size:10" json:"gender"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastLogin *time.Time `json:"last_login"`

	// Quan hệ
	TaughtCourses []Course   `gorm:"foreignKey:TeacherID" json:"-"`
	Stats         *UserStats `gorm:"foreignKey:UserID" json:"-"`
}

// UserStats được tạo kèm User trong cùng một transaction khi đăng ký
type UserStats struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	TotalStudyTime       int     `gorm:"default:0" json:"total_study_time"`
	CoursesEnrolled      int     `gorm:"default:0" json:"courses_enrolled"`
	AssignmentsCompleted int     `gorm:"default:0" json:"assignments_completed"`
	QuizAverageScore     float64 `gorm:"default:0" json:"quiz_average_score"`

	QuestionsAsked    int `gorm:"default:0" json:"questions_asked"`
	QuestionsAnswered int `gorm:"default:0" json:"questions_answered"`
	ForumPosts        int `gorm:"default:0" json:"forum_posts"`

	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// PublicUser là phần thông tin user trả về cho client
type PublicUser struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	RealName   string     `json:"real_name"`
	Role       string     `json:"role"`
	StudentID  string     `json:"student_id"`
	EmployeeID string     `json:"employee_id"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	Avatar     string     `json:"avatar"`
	Phone      string     `json:"phone"`
	Gender     string     `json:"gender"`
	LastLogin  *time.Time `json:"last_login"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		RealName:   u.RealName,
		Role:       u.Role.Name,
		StudentID:  u.StudentID,
		EmployeeID: u.EmployeeID,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		Avatar:     u.Avatar,
		Phone:      u.Phone,
		Gender:     u.Gender,
		LastLogin:  u.LastLogin,
	}
}
