package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
)

// setupTest wires the handlers to a fresh in-memory database and returns a
// ready router.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Appointment{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Same partial index the Postgres migration creates
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		 ON appointments (appointment_date) WHERE status <> 'cancelled'`,
	).Error; err != nil {
		t.Fatalf("failed to create slot index: %v", err)
	}

	database.DB = db

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api"))
	return router
}

// seedCatalog inserts one customer and one service with its category
func seedCatalog(t *testing.T) (models.Customer, models.Service) {
	t.Helper()

	customer := models.Customer{FullName: "Ayşe Yılmaz", PhoneNumber: "+90 555 111 2233"}
	if err := database.DB.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	category := models.ServiceCategory{Name: "Lazer Epilasyon"}
	if err := database.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	service := models.Service{Name: "Lazer Epilasyon - Tüm Vücut", Price: 1500, CategoryID: category.ID}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}

	return customer, service
}

// doJSON performs a request with a JSON-encoded body
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response into out
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// errorMessage extracts the error field from a JSON error response
func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, w, &body)
	return body["error"]
}
