package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/polybites/polybites-backend/internal/profile/domain"
	"github.com/polybites/polybites-backend/internal/profile/repository"
)

// The handler registers its Prometheus collectors on construction, so the
// suite shares one handler and one database across tests.
var testRouter *mux.Router

func TestMain(m *testing.M) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open test database: %v\n", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get database instance: %v\n", err)
		os.Exit(1)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.Profile{}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	handler := NewProfileHandler(repository.NewGormProfileRepository(db))
	testRouter = mux.NewRouter()
	handler.RegisterRoutes(testRouter)

	os.Exit(m.Run())
}

func doRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func TestCreateProfileEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/profiles", map[string]interface{}{
		"name":    "Dana",
		"auth_id": "auth-sub-100",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile domain.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if profile.ID == 0 || profile.Name != "Dana" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/api/profiles/%d", profile.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateProfileDuplicateAuthID(t *testing.T) {
	body := map[string]interface{}{
		"name":    "Sam",
		"auth_id": "auth-sub-200",
	}
	if rec := doRequest(t, http.MethodPost, "/api/profiles", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doRequest(t, http.MethodPost, "/api/profiles", body); rec.Code != http.StatusConflict {
		t.Fatalf("second create: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetProfileNotFound(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/profiles/987654", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProfileMetricsRecorded(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/profiles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		switch mf.GetName() {
		case "profile_service_requests_total", "profile_service_request_duration_seconds":
			if len(mf.GetMetric()) > 0 {
				found[mf.GetName()] = true
			}
		}
	}
	if !found["profile_service_requests_total"] || !found["profile_service_request_duration_seconds"] {
		t.Errorf("expected both profile service collectors to have samples, found %v", found)
	}
}
