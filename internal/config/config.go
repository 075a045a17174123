package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiresIn string // minutes

	AdminUserID   string
	AdminPassword string
	AdminName     string

	// Spreadsheet sources. The *SheetID values accept a comma-separated
	// list of spreadsheet IDs whose rows are merged per sync.
	GoogleCredentialsFile string
	StudentsSheetID       string
	StudentsRange         string
	AttendanceSheetID     string
	AttendanceRange       string
	CoursesSheetID        string
	CoursesRange          string

	// Local workbook fallbacks used when the live source fails.
	StudentsXLSX   string
	AttendanceXLSX string
	UseExcelOnly   bool

	SyncTTLSeconds int
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "school"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),

		AdminUserID:   getenv("ADMIN_USER_ID", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminName:     getenv("ADMIN_NAME", "Admin"),

		GoogleCredentialsFile: getenv("GOOGLE_APPLICATION_CREDENTIALS", "credentials.json"),
		StudentsSheetID:       os.Getenv("STUDENTS_SHEET_ID"),
		StudentsRange:         getenv("STUDENTS_RANGE", "Student_Details!A:AZ"),
		AttendanceSheetID:     os.Getenv("ATTENDANCE_SHEET_ID"),
		AttendanceRange:       getenv("ATTENDANCE_RANGE", "attendance!A:ZZ"),
		CoursesSheetID:        os.Getenv("COURSES_SHEET_ID"),
		CoursesRange:          getenv("COURSES_RANGE", "Sheet1!A:C"),

		StudentsXLSX:   getenv("STUDENTS_XLSX", "students.xlsx"),
		AttendanceXLSX: getenv("ATTENDANCE_XLSX", "attendance.xlsx"),
		UseExcelOnly:   getbool("USE_EXCEL_ONLY", false),

		SyncTTLSeconds: getint("SYNC_TTL_SECONDS", 60),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getbool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "True", "TRUE", "yes":
		return true
	case "0", "false", "False", "FALSE", "no":
		return false
	}
	return fallback
}
