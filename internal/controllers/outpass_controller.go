package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

type OutPassController struct {
	DB *gorm.DB
}

type createPassRequest struct {
	PassType     string `json:"pass_type" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	FromDatetime string `json:"from_datetime"`
	ToDatetime   string `json:"to_datetime"`
	ODDuration   string `json:"od_duration"`
	ODDays       int    `json:"od_days"`
	OtherHours   string `json:"other_hours"`
}

// Create files a new pass request for the logged-in student.
func (pc *OutPassController) Create(c *gin.Context) {
	var req createPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidPassType(req.PassType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pass_type: " + req.PassType})
		return
	}
	if req.PassType == models.PassTypeOD && req.ODDuration == "" && req.ODDays <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "od_pass requires od_duration or od_days"})
		return
	}
	if req.PassType != models.PassTypeOD && (req.FromDatetime == "" || req.ToDatetime == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_datetime and to_datetime are required"})
		return
	}

	var student models.Student
	if err := pc.DB.Where("user_id = ?", c.GetString("user_id")).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	pass := models.OutPass{
		RequesterUserID: student.UserID,
		RequesterName:   student.Name,
		RollNo:          student.RollNo,
		Department:      student.CurrentSemester,
		PassType:        req.PassType,
		Reason:          req.Reason,
		FromDatetime:    req.FromDatetime,
		ToDatetime:      req.ToDatetime,
		ODDuration:      req.ODDuration,
		ODDays:          req.ODDays,
		OtherHours:      req.OtherHours,
		Status:          models.PassPending,
		AdvisorStatus:   models.PassPending,
		HodStatus:       models.PassPending,
	}
	if err := pc.DB.Create(&pass).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "pass": pass})
}

// Mine lists the logged-in student's own requests, newest first.
func (pc *OutPassController) Mine(c *gin.Context) {
	var passes []models.OutPass
	err := pc.DB.Where("requester_user_id = ?", c.GetString("user_id")).
		Order("created_at DESC").
		Find(&passes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(passes), "passes": passes})
}

// Pending lists the requests waiting on the caller's stage: advisors
// see undecided first-stage passes from their department, hods see
// advisor-approved passes awaiting the final call, and principal/admin
// see everything still open.
func (pc *OutPassController) Pending(c *gin.Context) {
	role := c.GetString("role")

	q := pc.DB.Model(&models.OutPass{}).Order("created_at ASC")
	switch role {
	case models.RoleTeacher:
		q = q.Where("advisor_status = ? AND status = ?", models.PassPending, models.PassPending)
		if dept := staffDepartment(pc.DB, c.GetString("user_id")); dept != "" {
			q = q.Where("department = ?", dept)
		}
	case models.RoleHod:
		q = q.Where("advisor_status = ? AND hod_status = ? AND status = ?",
			models.PassApproved, models.PassPending, models.PassPending)
		if dept := staffDepartment(pc.DB, c.GetString("user_id")); dept != "" {
			q = q.Where("department = ?", dept)
		}
	default:
		q = q.Where("status = ?", models.PassPending)
	}

	var passes []models.OutPass
	if err := q.Find(&passes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(passes), "passes": passes})
}

// Details returns one pass. Students may only read their own.
func (pc *OutPassController) Details(c *gin.Context) {
	var pass models.OutPass
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&pass).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pass not found"})
		return
	}
	if c.GetString("role") == models.RoleStudent && pass.RequesterUserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your pass"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pass": pass})
}

type decisionRequest struct {
	Decision     string `json:"decision" binding:"required"`
	Remarks      string `json:"remarks"`
	FromDatetime string `json:"from_datetime"`
	ToDatetime   string `json:"to_datetime"`
}

// Decide records a decision at the stage the caller's role owns.
// Advisors may also adjust the requested time window while approving.
func (pc *OutPassController) Decide(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	decision := strings.ToLower(strings.TrimSpace(req.Decision))

	var pass models.OutPass
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&pass).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pass not found"})
		return
	}

	userID := c.GetString("user_id")
	var err error
	switch c.GetString("role") {
	case models.RoleTeacher:
		err = pass.ApplyAdvisorDecision(decision, userID, req.Remarks, req.FromDatetime, req.ToDatetime)
	case models.RoleHod:
		err = pass.ApplyHodDecision(decision, userID, req.Remarks)
	case models.RolePrincipal, models.RoleAdmin:
		err = pass.ApplyOverride(decision, userID, req.Remarks)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "role may not decide passes"})
		return
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrAlreadyDecided) || errors.Is(err, models.ErrNotAtHodStage) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := pc.DB.Save(&pass).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pass": pass})
}
