package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/database"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/labs"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Email: email, PasswordHash: string(hash), IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return &user
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyLabFromSocket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	owner := createUser(t, db, "a@x.com")

	lab, err := labs.StartLab(db, owner, "frankhertz1", "Frank-Hertz 1", 2, nil)
	if err != nil {
		t.Fatalf("StartLab() error = %v, want nil", err)
	}

	r := gin.New()
	h := NewVerificationHandler(db)
	r.POST("/api/verify_lab_from_socket", h.VerifyLabFromSocket)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantSuccess bool
	}{
		{
			name:        "owner with matching token",
			body:        fmt.Sprintf(`{"email":"a@x.com","verification_token":%q,"lab_id":"frankhertz1"}`, lab.VerificationToken),
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:       "wrong token",
			body:       `{"email":"a@x.com","verification_token":"wrongtoken00","lab_id":"frankhertz1"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong email",
			body:       fmt.Sprintf(`{"email":"b@x.com","verification_token":%q,"lab_id":"frankhertz1"}`, lab.VerificationToken),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing fields",
			body:       `{"email":"a@x.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed JSON",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/verify_lab_from_socket", tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("parse response: %v", err)
			}
			success, _ := resp["success"].(bool)
			if success != tc.wantSuccess {
				t.Errorf("success = %v, want %v", success, tc.wantSuccess)
			}
		})
	}
}
