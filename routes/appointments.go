package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
	"beauty-salon-server/salon"
	ws "beauty-salon-server/websocket"
)

// RegisterAppointmentRoutes registers all appointment-related routes
func RegisterAppointmentRoutes(router *gin.RouterGroup) {
	router.GET("", GetAppointments)
	router.GET("/calendar", GetAppointmentCalendar)
	router.GET("/by-date-range", GetAppointmentsByDateRange)
	router.GET("/today", GetTodaysAppointments)
	router.GET("/upcoming", GetUpcomingAppointments)
	router.GET("/by-status/:status", GetAppointmentsByStatus)
	router.GET("/customer/:customerId", GetAppointmentsForCustomer)
	router.GET("/:id", GetAppointment)
	router.POST("", CreateAppointment)
	router.PUT("/:id", UpdateAppointment)
	router.PUT("/:id/status", SetAppointmentStatus)
	router.PUT("/:id/confirm", ConfirmAppointment)
	router.PUT("/:id/complete", CompleteAppointment)
	router.PUT("/:id/cancel", CancelAppointment)
	router.DELETE("/:id", DeleteAppointment)
}

// isActiveSlotConflict reports whether a write was rejected by the partial
// unique index guarding non-cancelled slots.
func isActiveSlotConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_appointments_active_slot")
}

// hasConflictingAppointment scans for another non-cancelled appointment at
// the exact same instant. excludeID skips the row being edited.
func hasConflictingAppointment(date time.Time, excludeID uint) bool {
	var count int64
	query := database.DB.Model(&models.Appointment{}).
		Where("appointment_date = ? AND status <> ?", date, models.AppointmentStatusCancelled)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}

func appointmentResponses(appointments []models.Appointment) []models.AppointmentResponse {
	responses := make([]models.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, models.NewAppointmentResponse(appointment))
	}
	return responses
}

// GetAppointments returns all appointments, newest first
func GetAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Order("appointment_date DESC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointmentResponses(appointments))
}

// GetAppointment returns a specific appointment by ID
func GetAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, models.NewAppointmentResponse(appointment))
}

// GetAppointmentCalendar returns the compact calendar projection. The range
// defaults to one month back and one month ahead.
func GetAppointmentCalendar(c *gin.Context) {
	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 1, 0)

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
			return
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
			return
		}
		end = parsed
	}

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service").
		Where("appointment_date >= ? AND appointment_date <= ?", start, end).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	responses := make([]models.AppointmentCalendarResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, models.AppointmentCalendarResponse{
			AppointmentID:   appointment.ID,
			CustomerName:    appointment.Customer.FullName,
			ServiceName:     appointment.Service.Name,
			AppointmentDate: appointment.AppointmentDate,
			Status:          appointment.Status,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetAppointmentsByDateRange returns appointments between two dates,
// inclusive at day granularity
func GetAppointmentsByDateRange(c *gin.Context) {
	start, err := parseTimeParam(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
		return
	}
	end, err := parseTimeParam(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
		return
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayEnd).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointmentResponses(appointments))
}

// GetAppointmentsForCustomer returns one customer's appointments, newest first
func GetAppointmentsForCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customerId")
	if !ok {
		return
	}

	var count int64
	database.DB.Model(&models.Customer{}).Where("id = ?", customerID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Where("customer_id = ?", customerID).
		Order("appointment_date DESC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointmentResponses(appointments))
}

// GetTodaysAppointments returns appointments scheduled for today
func GetTodaysAppointments(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Where("appointment_date >= ? AND appointment_date < ?", today, tomorrow).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointmentResponses(appointments))
}

// GetUpcomingAppointments returns scheduled/confirmed appointments within
// the next N days (default 7)
func GetUpcomingAppointments(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
			return
		}
		days = parsed
	}

	start := time.Now()
	end := start.AddDate(0, 0, days)

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Where("appointment_date >= ? AND appointment_date <= ?", start, end).
		Where("status IN ?", []models.AppointmentStatus{models.AppointmentStatusScheduled, models.AppointmentStatusConfirmed}).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointmentResponses(appointments))
}

// GetAppointmentsByStatus returns appointments in one lifecycle state
func GetAppointmentsByStatus(c *gin.Context) {
	status, ok := models.ParseAppointmentStatus(c.Param("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Where("status = ?", status).
		Order("appointment_date DESC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointmentResponses(appointments))
}

// CreateAppointment books a new appointment. The agreed price is snapshotted
// from the request, remaining sessions start equal to total sessions, and
// the slot must be free of non-cancelled bookings.
func CreateAppointment(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var customerCount int64
	database.DB.Model(&models.Customer{}).Where("id = ?", req.CustomerID).Count(&customerCount)
	if customerCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return
	}

	var serviceCount int64
	database.DB.Model(&models.Service{}).Where("id = ?", req.ServiceID).Count(&serviceCount)
	if serviceCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service not found"})
		return
	}

	if hasConflictingAppointment(req.AppointmentDate, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There is already an appointment at this time"})
		return
	}

	appointment := models.Appointment{
		CustomerID:        req.CustomerID,
		ServiceID:         req.ServiceID,
		AgreedPrice:       req.AgreedPrice,
		TotalSessions:     req.TotalSessions,
		RemainingSessions: req.TotalSessions,
		AppointmentDate:   req.AppointmentDate,
		Status:            models.AppointmentStatusScheduled,
	}

	if err := database.DB.Create(&appointment).Error; err != nil {
		// A racing request may have taken the slot between the check
		// and the insert; the partial unique index catches it.
		if isActiveSlotConflict(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "There is already an appointment at this time"})
			return
		}
		log.Printf("❌ Failed to create appointment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		First(&appointment, appointment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Appointment could not be loaded after creation"})
		return
	}

	log.Printf("✅ Appointment created: customer %d, service %d at %s (ID: %d)",
		appointment.CustomerID, appointment.ServiceID, appointment.AppointmentDate.Format(time.RFC3339), appointment.ID)

	response := models.NewAppointmentResponse(appointment)
	publishEvent(ws.EventAppointmentCreated, response)
	c.JSON(http.StatusCreated, response)
}

// UpdateAppointment replaces every editable field. The conflict check only
// reruns when the date actually changes.
func UpdateAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if _, valid := models.ParseAppointmentStatus(string(req.Status)); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var customerCount int64
	database.DB.Model(&models.Customer{}).Where("id = ?", req.CustomerID).Count(&customerCount)
	if customerCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return
	}

	var serviceCount int64
	database.DB.Model(&models.Service{}).Where("id = ?", req.ServiceID).Count(&serviceCount)
	if serviceCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service not found"})
		return
	}

	if !appointment.AppointmentDate.Equal(req.AppointmentDate) && hasConflictingAppointment(req.AppointmentDate, id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There is already an appointment at this time"})
		return
	}

	appointment.CustomerID = req.CustomerID
	appointment.ServiceID = req.ServiceID
	appointment.AgreedPrice = req.AgreedPrice
	appointment.TotalSessions = req.TotalSessions
	appointment.RemainingSessions = req.RemainingSessions
	appointment.AppointmentDate = req.AppointmentDate
	appointment.Status = req.Status

	if err := database.DB.Save(&appointment).Error; err != nil {
		if isActiveSlotConflict(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "There is already an appointment at this time"})
			return
		}
		log.Printf("❌ Failed to update appointment %d: %v", appointment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}

	publishEvent(ws.EventAppointmentUpdated, gin.H{"appointmentId": appointment.ID})
	c.Status(http.StatusNoContent)
}

// SetAppointmentStatus is the unguarded administrative status set. The body
// is a bare status value.
func SetAppointmentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var raw string
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	status, valid := models.ParseAppointmentStatus(raw)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	salon.ForceStatus(&appointment, status)

	if err := database.DB.Save(&appointment).Error; err != nil {
		// Reactivating a cancelled booking fails when its slot was rebooked
		if isActiveSlotConflict(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "There is already an appointment at this time"})
			return
		}
		log.Printf("❌ Failed to update appointment %d status: %v", appointment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment status"})
		return
	}

	publishEvent(ws.EventAppointmentStatus, gin.H{"appointmentId": appointment.ID, "status": appointment.Status})
	c.Status(http.StatusNoContent)
}

// transitionAppointment loads, transitions and saves one appointment
func transitionAppointment(c *gin.Context, transition func(*models.Appointment) error) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if err := transition(&appointment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Save(&appointment).Error; err != nil {
		if isActiveSlotConflict(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "There is already an appointment at this time"})
			return
		}
		log.Printf("❌ Failed to save appointment %d: %v", appointment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}

	publishEvent(ws.EventAppointmentStatus, gin.H{"appointmentId": appointment.ID, "status": appointment.Status})
	c.Status(http.StatusNoContent)
}

// ConfirmAppointment confirms a scheduled appointment
func ConfirmAppointment(c *gin.Context) {
	transitionAppointment(c, salon.Confirm)
}

// CompleteAppointment completes a visit and consumes one session
func CompleteAppointment(c *gin.Context) {
	transitionAppointment(c, salon.Complete)
}

// CancelAppointment cancels from any state, freeing the time slot
func CancelAppointment(c *gin.Context) {
	transitionAppointment(c, func(a *models.Appointment) error {
		salon.Cancel(a)
		return nil
	})
}

// DeleteAppointment removes an appointment unless payments reference it
func DeleteAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var paymentCount int64
	database.DB.Model(&models.Payment{}).Where("appointment_id = ?", id).Count(&paymentCount)
	if paymentCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete appointment with existing payments"})
		return
	}

	if err := database.DB.Delete(&appointment).Error; err != nil {
		log.Printf("❌ Failed to delete appointment %d: %v", appointment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment"})
		return
	}

	log.Printf("✅ Appointment deleted (ID: %d)", appointment.ID)
	publishEvent(ws.EventAppointmentDeleted, gin.H{"appointmentId": appointment.ID})
	c.Status(http.StatusNoContent)
}
