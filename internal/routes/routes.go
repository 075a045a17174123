package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/config"
	"github.com/callmyselfasaarya/Class-Connect/internal/controllers"
	"github.com/callmyselfasaarya/Class-Connect/internal/middleware"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/sheetsync"
	"github.com/callmyselfasaarya/Class-Connect/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, sync *sheetsync.Service, hub *ws.SyncHub) {
	expires, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
	if err != nil || expires == 0 {
		expires = 60 * time.Minute
	}

	authCtrl := &controllers.AuthController{DB: db, JWTSecret: cfg.JWTSecret, ExpiresIn: expires}
	studentCtrl := &controllers.StudentController{DB: db, Sync: sync}
	teacherCtrl := &controllers.TeacherController{DB: db}
	courseCtrl := &controllers.CourseController{DB: db, Sync: sync}
	attCtrl := &controllers.AttendanceController{DB: db, Sync: sync}
	passCtrl := &controllers.OutPassController{DB: db}

	// Public
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/student/login", authCtrl.StudentLogin)
		auth.POST("/staff/login", authCtrl.StaffLogin)
	}
	r.GET("/api/v1/health", attCtrl.Health)

	// Protected
	authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{JWTSecret: cfg.JWTSecret})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)
		api.POST("/auth/logout", authCtrl.Logout)

		// Student self-service
		student := api.Group("/student", middleware.RequireRoles(models.RoleStudent))
		{
			student.GET("/info", studentCtrl.Info)
			student.GET("/attendance", attCtrl.MyAverage)
			student.GET("/courses", courseCtrl.List)
			student.POST("/passes", passCtrl.Create)
			student.GET("/passes", passCtrl.Mine)
			student.GET("/passes/:id", passCtrl.Details)
		}

		// Staff: advisors, hods, principal (admin passes every gate)
		staff := api.Group("/staff", middleware.RequireRoles(
			models.RoleTeacher, models.RoleHod, models.RolePrincipal))
		{
			staff.GET("/students", studentCtrl.List)
			staff.GET("/students/departments", studentCtrl.Departments)
			staff.GET("/students/:rollno", studentCtrl.Details)
			staff.GET("/attendance/averages", attCtrl.AllAverages)
			staff.GET("/attendance/averages/:rollno", attCtrl.StudentAverage)
			staff.GET("/attendance/daily-absent", attCtrl.DailyAbsent)
			staff.GET("/courses", courseCtrl.List)
			staff.POST("/password", teacherCtrl.ChangePassword)
		}

		// Pass decisions: every staff role, dispatched by role inside
		passes := api.Group("/passes", middleware.RequireRoles(
			models.RoleTeacher, models.RoleHod, models.RolePrincipal))
		{
			passes.GET("/pending", passCtrl.Pending)
			passes.GET("/:id", passCtrl.Details)
			passes.POST("/:id/decision", passCtrl.Decide)
		}

		// Admin-only management
		admin := api.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/teachers", teacherCtrl.List)
			admin.POST("/teachers", teacherCtrl.Add)
			admin.DELETE("/teachers/:user_id", teacherCtrl.Delete)
			admin.DELETE("/students/:rollno", studentCtrl.Delete)
			admin.POST("/students/:rollno/reset-password", studentCtrl.ResetPassword)
			admin.POST("/sync", attCtrl.ManualSync)
			admin.POST("/courses/refresh", courseCtrl.Refresh)
		}

		// Live sync notifications for staff dashboards
		api.GET("/ws/sync", ws.SyncEventsHandler(hub))
	}
}
