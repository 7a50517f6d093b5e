package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
)

func TestCreateAppointment(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     1200.0,
		"totalSessions":   6,
		"appointmentDate": date,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AppointmentResponse
	decode(t, w, &resp)

	if resp.Status != models.AppointmentStatusScheduled {
		t.Fatalf("new bookings must start scheduled, got %s", resp.Status)
	}
	if resp.RemainingSessions != 6 {
		t.Fatalf("remaining sessions must start at total, got %d", resp.RemainingSessions)
	}
	if resp.AgreedPrice != 1200 {
		t.Fatalf("expected agreed price snapshot 1200, got %.2f", resp.AgreedPrice)
	}
	if resp.CustomerName != customer.FullName || resp.ServiceName != service.Name {
		t.Fatalf("expected joined names in response, got %+v", resp)
	}
}

func TestCreateAppointmentUnknownCustomer(t *testing.T) {
	router := setupTest(t)
	_, service := seedCatalog(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      9999,
		"serviceId":       service.ID,
		"agreedPrice":     100.0,
		"totalSessions":   1,
		"appointmentDate": time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Customer not found" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	body := map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     500.0,
		"totalSessions":   1,
		"appointmentDate": date,
	}

	if w := doJSON(t, router, http.MethodPost, "/api/appointments", body); w.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodPost, "/api/appointments", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("double booking: expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "There is already an appointment at this time" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	date := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	body := map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     500.0,
		"totalSessions":   1,
		"appointmentDate": date,
	}

	w := doJSON(t, router, http.MethodPost, "/api/appointments", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var first models.AppointmentResponse
	decode(t, w, &first)

	cancelPath := fmt.Sprintf("/api/appointments/%d/cancel", first.AppointmentID)
	if w := doJSON(t, router, http.MethodPut, cancelPath, nil); w.Code != http.StatusNoContent {
		t.Fatalf("cancel: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// The cancelled booking no longer blocks its slot
	if w := doJSON(t, router, http.MethodPost, "/api/appointments", body); w.Code != http.StatusCreated {
		t.Fatalf("rebooking a cancelled slot: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestConfirmThenCompleteConsumesSession(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     900.0,
		"totalSessions":   3,
		"appointmentDate": time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created models.AppointmentResponse
	decode(t, w, &created)

	confirmPath := fmt.Sprintf("/api/appointments/%d/confirm", created.AppointmentID)
	if w := doJSON(t, router, http.MethodPut, confirmPath, nil); w.Code != http.StatusNoContent {
		t.Fatalf("confirm: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	completePath := fmt.Sprintf("/api/appointments/%d/complete", created.AppointmentID)
	if w := doJSON(t, router, http.MethodPut, completePath, nil); w.Code != http.StatusNoContent {
		t.Fatalf("complete: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/appointments/%d", created.AppointmentID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var loaded models.AppointmentResponse
	decode(t, w, &loaded)

	if loaded.Status != models.AppointmentStatusCompleted {
		t.Fatalf("expected completed, got %s", loaded.Status)
	}
	if loaded.RemainingSessions != 2 {
		t.Fatalf("expected 2 remaining sessions, got %d", loaded.RemainingSessions)
	}
}

func TestConfirmRejectsCompletedAppointment(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   1,
		"appointmentDate": time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC),
	})
	var created models.AppointmentResponse
	decode(t, w, &created)

	completePath := fmt.Sprintf("/api/appointments/%d/complete", created.AppointmentID)
	if w := doJSON(t, router, http.MethodPut, completePath, nil); w.Code != http.StatusNoContent {
		t.Fatalf("complete: expected 204, got %d", w.Code)
	}

	confirmPath := fmt.Sprintf("/api/appointments/%d/confirm", created.AppointmentID)
	w = doJSON(t, router, http.MethodPut, confirmPath, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("confirm completed: expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Only scheduled appointments can be confirmed" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestSetAppointmentStatusForceCompleted(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   2,
		"appointmentDate": time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC),
	})
	var created models.AppointmentResponse
	decode(t, w, &created)

	// The force path skips lifecycle guards but still consumes a session
	statusPath := fmt.Sprintf("/api/appointments/%d/status", created.AppointmentID)
	if w := doJSON(t, router, http.MethodPut, statusPath, "completed"); w.Code != http.StatusNoContent {
		t.Fatalf("force status: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var loaded models.Appointment
	if err := database.DB.First(&loaded, created.AppointmentID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if loaded.Status != models.AppointmentStatusCompleted {
		t.Fatalf("expected completed, got %s", loaded.Status)
	}
	if loaded.RemainingSessions != 1 {
		t.Fatalf("expected 1 remaining session, got %d", loaded.RemainingSessions)
	}

	// Repeating the same force-set must not consume another session
	if w := doJSON(t, router, http.MethodPut, statusPath, "completed"); w.Code != http.StatusNoContent {
		t.Fatalf("repeat force status: expected 204, got %d", w.Code)
	}
	if err := database.DB.First(&loaded, created.AppointmentID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if loaded.RemainingSessions != 1 {
		t.Fatalf("repeat completed must not decrement again, got %d", loaded.RemainingSessions)
	}
}

func TestSetAppointmentStatusRejectsUnknownValue(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   1,
		"appointmentDate": time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
	})
	var created models.AppointmentResponse
	decode(t, w, &created)

	statusPath := fmt.Sprintf("/api/appointments/%d/status", created.AppointmentID)
	w = doJSON(t, router, http.MethodPut, statusPath, "teleported")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Invalid status" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestUpdateAppointmentKeepingDateSkipsConflictCheck(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	date := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   2,
		"appointmentDate": date,
	})
	var created models.AppointmentResponse
	decode(t, w, &created)

	// Editing the price without moving the booking must not trip over the
	// appointment's own slot.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/appointments/%d", created.AppointmentID), map[string]interface{}{
		"customerId":        customer.ID,
		"serviceId":         service.ID,
		"agreedPrice":       550.0,
		"totalSessions":     2,
		"remainingSessions": 2,
		"appointmentDate":   date,
		"status":            "scheduled",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var loaded models.Appointment
	if err := database.DB.First(&loaded, created.AppointmentID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if loaded.AgreedPrice != 550 {
		t.Fatalf("expected updated price 550, got %.2f", loaded.AgreedPrice)
	}
}

func TestUpdateAppointmentMovingOntoTakenSlot(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	takenDate := time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)
	freeDate := time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC)

	doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   1,
		"appointmentDate": takenDate,
	})
	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   1,
		"appointmentDate": freeDate,
	})
	var second models.AppointmentResponse
	decode(t, w, &second)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/appointments/%d", second.AppointmentID), map[string]interface{}{
		"customerId":        customer.ID,
		"serviceId":         service.ID,
		"agreedPrice":       400.0,
		"totalSessions":     1,
		"remainingSessions": 1,
		"appointmentDate":   takenDate,
		"status":            "scheduled",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); msg != "There is already an appointment at this time" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestGetAppointmentsByStatus(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	dates := []time.Time{
		time.Date(2026, 9, 17, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 17, 11, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
			"customerId":      customer.ID,
			"serviceId":       service.ID,
			"agreedPrice":     400.0,
			"totalSessions":   1,
			"appointmentDate": date,
		})
	}

	w := doJSON(t, router, http.MethodGet, "/api/appointments/by-status/scheduled", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var scheduled []models.AppointmentResponse
	decode(t, w, &scheduled)
	if len(scheduled) != 2 {
		t.Fatalf("expected 2 scheduled appointments, got %d", len(scheduled))
	}

	w = doJSON(t, router, http.MethodGet, "/api/appointments/by-status/parked", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", w.Code)
	}
}

func TestReactivatingCancelledOntoTakenSlotRejected(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	date := time.Date(2026, 9, 19, 10, 0, 0, 0, time.UTC)
	body := map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   1,
		"appointmentDate": date,
	}

	w := doJSON(t, router, http.MethodPost, "/api/appointments", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var first models.AppointmentResponse
	decode(t, w, &first)

	cancelPath := fmt.Sprintf("/api/appointments/%d/cancel", first.AppointmentID)
	if w := doJSON(t, router, http.MethodPut, cancelPath, nil); w.Code != http.StatusNoContent {
		t.Fatalf("cancel: expected 204, got %d", w.Code)
	}

	// Another booking takes the freed slot
	if w := doJSON(t, router, http.MethodPost, "/api/appointments", body); w.Code != http.StatusCreated {
		t.Fatalf("rebooking: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Force-setting the cancelled booking back to active must surface the
	// slot conflict, not a server error
	statusPath := fmt.Sprintf("/api/appointments/%d/status", first.AppointmentID)
	w = doJSON(t, router, http.MethodPut, statusPath, "scheduled")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); msg != "There is already an appointment at this time" {
		t.Fatalf("unexpected error message %q", msg)
	}

	var loaded models.Appointment
	if err := database.DB.First(&loaded, first.AppointmentID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if loaded.Status != models.AppointmentStatusCancelled {
		t.Fatalf("rejected reactivation must leave the booking cancelled, got %s", loaded.Status)
	}
}

func TestDeleteAppointmentWithPaymentsRejected(t *testing.T) {
	router := setupTest(t)
	customer, service := seedCatalog(t)

	w := doJSON(t, router, http.MethodPost, "/api/appointments", map[string]interface{}{
		"customerId":      customer.ID,
		"serviceId":       service.ID,
		"agreedPrice":     400.0,
		"totalSessions":   1,
		"appointmentDate": time.Date(2026, 9, 18, 10, 0, 0, 0, time.UTC),
	})
	var created models.AppointmentResponse
	decode(t, w, &created)

	payment := models.Payment{
		CustomerID:    customer.ID,
		AppointmentID: &created.AppointmentID,
		AmountPaid:    100,
		PaymentDate:   time.Now(),
		PaymentMethod: models.PaymentMethodCash,
		Status:        models.PaymentStatusPaid,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		t.Fatalf("failed to seed payment: %v", err)
	}

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/appointments/%d", created.AppointmentID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Cannot delete appointment with existing payments" {
		t.Fatalf("unexpected error message %q", msg)
	}
}
