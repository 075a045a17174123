package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

const testSecret = "test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:mw_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Teacher{}))

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(db, AuthConfig{JWTSecret: testSecret}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
	})
	return r, db
}

func signToken(t *testing.T, userID, role string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsLiveToken(t *testing.T) {
	r, db := newAuthRouter(t)
	require.NoError(t, db.Create(&models.Teacher{
		TeacherName: "Kavi", UserID: "t1", Role: models.RoleTeacher,
	}).Error)

	w := get(r, signToken(t, "t1", models.RoleTeacher, time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"user_id":"t1"`)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r, db := newAuthRouter(t)
	require.NoError(t, db.Create(&models.Teacher{
		TeacherName: "Kavi", UserID: "t1", Role: models.RoleTeacher,
	}).Error)

	w := get(r, signToken(t, "t1", models.RoleTeacher, time.Now().Add(-time.Minute)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsDeletedPrincipal(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := get(r, signToken(t, "ghost", models.RoleTeacher, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
