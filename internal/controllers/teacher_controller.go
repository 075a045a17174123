package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/utils"
)

type TeacherController struct {
	DB *gorm.DB
}

type addTeacherRequest struct {
	TeacherName   string `json:"teacher_name" binding:"required"`
	Department    string `json:"department"`
	UserID        string `json:"user_id" binding:"required"`
	Password      string `json:"password"`
	Qualification string `json:"qualification"`
	Experience    string `json:"experience"`
	Subject       string `json:"subject"`
	Address       string `json:"address"`
	DateOfJoining string `json:"date_of_joining"`
	Salary        string `json:"salary"`
	Role          string `json:"role"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Add creates a staff account. When no password is given a numeric one
// is generated and returned so the admin can hand it over.
func (tc *TeacherController) Add(c *gin.Context) {
	var req addTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleTeacher
	}
	if !models.IsValidStaffRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role: " + role})
		return
	}

	plain := req.Password
	if plain == "" {
		var err error
		plain, err = utils.NumericPassword(6)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate password"})
			return
		}
	}
	hash, err := utils.HashPassword(plain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	teacher := models.Teacher{
		TeacherName:   req.TeacherName,
		Department:    req.Department,
		UserID:        req.UserID,
		PasswordHash:  hash,
		PasswordPlain: plain,
		Qualification: req.Qualification,
		Experience:    req.Experience,
		Subject:       req.Subject,
		Address:       req.Address,
		DateOfJoining: req.DateOfJoining,
		Salary:        req.Salary,
		Role:          role,
	}
	if err := tc.DB.Create(&teacher).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "user_id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"teacher":  teacher,
		"user_id":  teacher.UserID,
		"password": plain,
	})
}

// List returns all staff accounts; the admin view includes the stored
// plaintext credentials.
func (tc *TeacherController) List(c *gin.Context) {
	var teachers []models.Teacher
	if err := tc.DB.Order("teacher_name").Find(&teachers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	includeCredential := c.GetString("role") == models.RoleAdmin
	out := make([]gin.H, 0, len(teachers))
	for _, t := range teachers {
		item := gin.H{
			"id":              t.ID,
			"teacher_name":    t.TeacherName,
			"department":      t.Department,
			"user_id":         t.UserID,
			"qualification":   t.Qualification,
			"experience":      t.Experience,
			"subject":         t.Subject,
			"address":         t.Address,
			"date_of_joining": t.DateOfJoining,
			"salary":          t.Salary,
			"role":            t.Role,
		}
		if includeCredential {
			item["password"] = t.PasswordPlain
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "teachers": out})
}

// Delete removes a staff account by user ID. The seeded admin cannot
// delete itself.
func (tc *TeacherController) Delete(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}
	res := tc.DB.Where("user_id = ?", userID).Delete(&models.Teacher{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "teacher not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "teacher deleted"})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword lets any staff member rotate their own credential.
func (tc *TeacherController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var teacher models.Teacher
	if err := tc.DB.Where("user_id = ?", c.GetString("user_id")).First(&teacher).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
		return
	}
	if !utils.CheckPassword(teacher.PasswordHash, req.OldPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "old password is incorrect"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}
	teacher.PasswordHash = hash
	teacher.PasswordPlain = req.NewPassword
	if err := tc.DB.Save(&teacher).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated"})
}
