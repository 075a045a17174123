package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/middleware"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/utils"
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
	ExpiresIn time.Duration
}

type loginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentLogin authenticates against the students table. Student login
// IDs are always "stu"+rollno with the sync-issued numeric credential.
func (a *AuthController) StudentLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var student models.Student
	if err := a.DB.Where("user_id = ?", req.UserID).First(&student).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !utils.CheckPassword(student.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	a.respondWithToken(c, student.UserID, models.RoleStudent)
}

// StaffLogin authenticates teachers, hods, the principal and the
// seeded admin; the stored role decides which dashboard the frontend
// routes to.
func (a *AuthController) StaffLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var teacher models.Teacher
	if err := a.DB.Where("user_id = ?", req.UserID).First(&teacher).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !utils.CheckPassword(teacher.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	role := teacher.Role
	if role == "" {
		role = models.RoleTeacher
	}
	a.respondWithToken(c, teacher.UserID, role)
}

func (a *AuthController) respondWithToken(c *gin.Context, userID, role string) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "class-connect",
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ExpiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int(a.ExpiresIn.Seconds()),
		"role":         role,
		"user_id":      userID,
	})
}

// Me returns the authenticated principal's profile.
func (a *AuthController) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	if role == models.RoleStudent {
		var student models.Student
		if err := a.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":          student.UserID,
			"role":             role,
			"name":             student.Name,
			"rollno":           student.RollNo,
			"current_semester": student.CurrentSemester,
		})
		return
	}

	var teacher models.Teacher
	if err := a.DB.Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":    teacher.UserID,
		"role":       role,
		"name":       teacher.TeacherName,
		"department": teacher.Department,
	})
}

// Logout is stateless: the client discards its token.
func (a *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
