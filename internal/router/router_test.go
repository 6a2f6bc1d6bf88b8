package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/config"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/database"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/intent"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
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

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "test-secret", Issuer: "remote-lab-backend", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	classifier := &intent.Classifier{
		General: &intent.Model{
			Labels:  []string{"locate"},
			Bias:    []float64{0},
			Weights: map[string][]float64{"where": {1}},
		},
		Object: &intent.Model{
			Labels:  []string{"thermometer"},
			Bias:    []float64{0},
			Weights: map[string][]float64{"thermometer": {1}},
		},
	}
	return SetupRouter(cfg, db, classifier)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWrongMethodAnswers405(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/create_user"},
		{http.MethodPost, "/api/get_all_labs"},
		{http.MethodGet, "/api/verify_lab_from_socket"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, "")
			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status = %d, want 405 (body %s)", w.Code, w.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("parse response: %v", err)
			}
			if resp["error"] != "Invalid request method" {
				t.Errorf("error = %q, want %q", resp["error"], "Invalid request method")
			}
		})
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/get_all_labs"},
		{http.MethodGet, "/api/get_active_labs"},
		{http.MethodPost, "/api/start_lab"},
		{http.MethodPost, "/api/invite_person"},
		{http.MethodGet, "/api/me"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, "{}")
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401 (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/create_user", `{"email":"a@x.com","password":"Password1"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("create_user status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/predict_intentions", `{"message":"where is the thermometer"}`)
	if w.Code != http.StatusOK {
		t.Errorf("predict_intentions status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}
