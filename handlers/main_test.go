package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/models"
	"github.com/asifrahman/collab_study/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// newTestApp wires the full route table against a throwaway sqlite database.
// TranslateError is on, as in production, so unique-index violations surface
// as gorm.ErrDuplicatedKey in the handlers under test.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Material{},
		&models.Booking{},
		&models.Review{},
		&models.Note{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{CaseSensitive: true, StrictRouting: true})
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.SessionRoutes(app)
	routes.MaterialRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.ReviewRoutes(app)
	routes.NoteRoutes(app)
	routes.AdminRoutes(app)
	return app
}

func seedUser(t *testing.T, email, role string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		DisplayName: "Test " + role,
		Email:       email,
		Password:    string(hashed),
		Role:        role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func seedSession(t *testing.T, tutorEmail, status string, fee float64) models.Session {
	t.Helper()
	now := time.Now()
	session := models.Session{
		Title:             "Algebra Basics",
		Subject:           "Math",
		Description:       "Intro algebra",
		TutorEmail:        tutorEmail,
		TutorName:         "Test tutor",
		RegistrationStart: now.Add(-time.Hour),
		RegistrationEnd:   now.Add(24 * time.Hour),
		ClassStart:        now.Add(48 * time.Hour),
		ClassEnd:          now.Add(50 * time.Hour),
		Duration:          "2 hours",
		Status:            status,
		RegistrationFee:   fee,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return session
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 15000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
}

func reloadSession(t *testing.T, id uuid.UUID) models.Session {
	t.Helper()
	var session models.Session
	if err := database.DB.First(&session, "id = ?", id).Error; err != nil {
		t.Fatalf("reload session: %v", err)
	}
	return session
}
