package controllers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/auth/credentials/idtoken"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/utils"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthController struct {
	Cfg *config.Config
}

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RealName   string `json:"real_name"`
	StudentID  string `json:"student_id"`
	EmployeeID string `json:"employee_id"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ====== HANDLERS ======

// Đăng ký: validate input, check trùng, tạo User + UserStats trong một
// transaction rồi phát cặp token.
func (a *AuthController) Register(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Dữ liệu gửi lên không hợp lệ"})
		return
	}

	username := strings.TrimSpace(input.Username)
	if input.Password == "" || username == "" || input.Email == "" || input.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu username, password, email hoặc role"})
		return
	}
	if n := len([]rune(username)); n < 3 || n > 20 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username phải từ 3 đến 20 ký tự"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mật khẩu phải từ 6 ký tự trở lên"})
		return
	}
	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email không đúng định dạng"})
		return
	}

	// Check trùng username/email
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username đã tồn tại"})
		return
	}
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email đã được đăng ký"})
		return
	}

	var role models.Role
	if err := db.Where("name = ?", input.Role).First(&role).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vai trò không hợp lệ"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể mã hoá mật khẩu"})
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		RealName:     input.RealName,
		RoleID:       role.ID,
		StudentID:    input.StudentID,
		EmployeeID:   input.EmployeeID,
		IsActive:     true,
		IsVerified:   false,
		IsTeacher:    role.Name == models.RoleTeacher,
	}

	// User và stats rỗng cùng một transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserStats{UserID: user.ID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi tạo người dùng"})
		return
	}

	tokens, err := utils.GenerateTokenPair(a.Cfg.JWTSecret, user.ID, role.Name, a.Cfg.AccessTokenTTL, a.Cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể tạo token"})
		return
	}

	user.Role = role
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Đăng ký thành công",
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user.Public(),
	})
}

// Đăng nhập bằng username (không phải email)
func (a *AuthController) Login(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username và mật khẩu không được để trống"})
		return
	}

	var user models.User
	if err := db.Preload("Role").Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Người dùng không tồn tại"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Mật khẩu không đúng"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Tài khoản đã bị khoá"})
		return
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể cập nhật thời gian đăng nhập"})
		return
	}

	tokens, err := utils.GenerateTokenPair(a.Cfg.JWTSecret, user.ID, user.Role.Name, a.Cfg.AccessTokenTTL, a.Cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Đăng nhập thành công",
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user.Public(),
	})
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Cấp lại access token từ refresh token còn hạn
func (a *AuthController) Refresh(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu refresh_token"})
		return
	}

	claims, err := utils.VerifyToken(a.Cfg.JWTSecret, input.RefreshToken)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Refresh token không hợp lệ hoặc hết hạn"})
		return
	}

	var user models.User
	if err := db.Preload("Role").First(&user, "id = ?", claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Người dùng không tồn tại"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Tài khoản đã bị khoá"})
		return
	}

	access, err := utils.GenerateToken(a.Cfg.JWTSecret, user.ID, user.Role.Name, utils.TokenTypeAccess, a.Cfg.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "access_token": access})
}

// Thông tin user đang đăng nhập
func (a *AuthController) Me(c *gin.Context) {
	user := c.MustGet("current_user").(*models.User)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

// Token là stateless nên logout chỉ xác nhận với client
func (a *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đăng xuất thành công"})
}

// Kiểm tra username còn trống không (dùng cho form đăng ký)
func (a *AuthController) CheckUsername(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Vui lòng nhập username"})
		return
	}
	if n := len([]rune(username)); n < 3 {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Username phải từ 3 ký tự"})
		return
	} else if n > 20 {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Username không quá 20 ký tự"})
		return
	}

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Username đã tồn tại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "message": "Username dùng được"})
}

func (a *AuthController) CheckEmail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Vui lòng nhập email"})
		return
	}
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Email không đúng định dạng"})
		return
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Email đã được đăng ký"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "message": "Email dùng được"})
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (a *AuthController) ChangePassword(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	user := c.MustGet("current_user").(*models.User)

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Mật khẩu mới phải từ 6 ký tự trở lên"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Mật khẩu cũ không đúng"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể mã hoá mật khẩu mới"})
		return
	}

	if err := db.Model(user).Update("password_hash", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Lỗi khi cập nhật mật khẩu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Đổi mật khẩu thành công"})
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

// Đăng nhập Google: xác minh ID token, chưa có user thì tạo mới với vai
// trò sinh viên.
func (a *AuthController) GoogleLogin(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Thiếu id_token"})
		return
	}

	payload, err := idtoken.Validate(c, input.IDToken, a.Cfg.GoogleClientID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token Google không hợp lệ"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	fullName, _ := payload.Claims["name"].(string)

	var user models.User
	if err := db.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		var role models.Role
		if err := db.Where("name = ?", models.RoleStudent).First(&role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Chưa seed vai trò sinh viên"})
			return
		}
		user = models.User{
			Username:   email,
			Email:      email,
			RealName:   fullName,
			RoleID:     role.ID,
			IsActive:   true,
			IsVerified: true,
			// PasswordHash để trống vì login Google
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.UserStats{UserID: user.ID}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể tạo user Google"})
			return
		}
		user.Role = role
	}

	tokens, err := utils.GenerateTokenPair(a.Cfg.JWTSecret, user.ID, user.Role.Name, a.Cfg.AccessTokenTTL, a.Cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user.Public(),
	})
}
