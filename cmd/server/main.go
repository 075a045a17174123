package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/config"
	"github.com/callmyselfasaarya/Class-Connect/internal/database"
	"github.com/callmyselfasaarya/Class-Connect/internal/routes"
	"github.com/callmyselfasaarya/Class-Connect/internal/sheetsync"
	"github.com/callmyselfasaarya/Class-Connect/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	hub := ws.NewSyncHub()
	go hub.Run()

	sync := buildSyncService(db, cfg, hub)

	r := gin.Default()
	routes.Register(r, db, cfg, sync, hub)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}

// buildSyncService wires the spreadsheet sources. Without Google
// credentials (or with USE_EXCEL_ONLY) the service runs on the local
// workbooks alone.
func buildSyncService(db *gorm.DB, cfg *config.Config, hub *ws.SyncHub) *sheetsync.Service {
	var live sheetsync.RowSource
	if !cfg.UseExcelOnly {
		if _, err := os.Stat(cfg.GoogleCredentialsFile); err == nil {
			src, err := sheetsync.NewSheetsSource(context.Background(), cfg.GoogleCredentialsFile)
			if err != nil {
				log.Printf("sheets source unavailable, using workbook fallback: %v", err)
			} else {
				live = src
			}
		} else {
			log.Printf("no google credentials at %s, using workbook fallback", cfg.GoogleCredentialsFile)
		}
	}

	workbook := func(path string) sheetsync.RowSource {
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		return &sheetsync.WorkbookSource{Path: path}
	}

	return &sheetsync.Service{
		DB: db,
		Students: sheetsync.SourceSet{
			Live:     live,
			SheetIDs: cfg.StudentsSheetID,
			Range:    cfg.StudentsRange,
			Fallback: workbook(cfg.StudentsXLSX),
		},
		Attendance: sheetsync.SourceSet{
			Live:     live,
			SheetIDs: cfg.AttendanceSheetID,
			Range:    cfg.AttendanceRange,
			Fallback: workbook(cfg.AttendanceXLSX),
		},
		Courses: sheetsync.SourceSet{
			Live:     live,
			SheetIDs: cfg.CoursesSheetID,
			Range:    cfg.CoursesRange,
		},
		TTL:      time.Duration(cfg.SyncTTLSeconds) * time.Second,
		Notifier: hub,
	}
}
