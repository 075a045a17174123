package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/sheetsync"
)

type CourseController struct {
	DB   *gorm.DB
	Sync *sheetsync.Service
}

// List returns the course catalogue. An empty table triggers a sync
// from the configured course sheet before answering.
func (cc *CourseController) List(c *gin.Context) {
	var count int64
	if err := cc.DB.Model(&models.Course{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count == 0 && cc.Sync != nil {
		if _, err := cc.Sync.SyncCourses(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "course sync failed: " + err.Error()})
			return
		}
	}

	var courses []models.Course
	if err := cc.DB.Order("course_name").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(courses), "courses": courses})
}

// Refresh re-reads the course sheet on demand.
func (cc *CourseController) Refresh(c *gin.Context) {
	if cc.Sync == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "course source not configured"})
		return
	}
	res, err := cc.Sync.SyncCourses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "course sync failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"inserted": res.Inserted,
		"updated":  res.Updated,
		"skipped":  res.Skipped,
	})
}
