package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
	"beauty-salon-server/salon"
	ws "beauty-salon-server/websocket"
)

// RegisterPaymentRoutes registers all payment-related routes
func RegisterPaymentRoutes(router *gin.RouterGroup) {
	router.GET("", GetPayments)
	router.GET("/pending", GetPendingPayments)
	router.GET("/filter", GetFilteredPayments)
	router.GET("/customer/:customerId", GetPaymentsForCustomer)
	router.GET("/customer/:customerId/balance", GetCustomerBalance)
	router.GET("/appointment/:appointmentId/status", GetAppointmentPaymentStatus)
	router.GET("/:id", GetPayment)
	router.POST("", CreatePayment)
	router.POST("/partial-payment", AddPartialPayment)
	router.PUT("/:id", UpdatePayment)
	router.PUT("/:id/status", SetPaymentStatus)
	router.DELETE("/:id", DeletePayment)
}

func paymentResponses(payments []models.Payment) []models.PaymentResponse {
	responses := make([]models.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, models.NewPaymentResponse(payment))
	}
	return responses
}

// GetPayments returns all payments, newest first
func GetPayments(c *gin.Context) {
	var payments []models.Payment
	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, paymentResponses(payments))
}

// GetPayment returns a specific payment by ID
func GetPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var payment models.Payment
	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		First(&payment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, models.NewPaymentResponse(payment))
}

// GetPaymentsForCustomer returns one customer's payments, newest first
func GetPaymentsForCustomer(c *gin.Context) {
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

	var payments []models.Payment
	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		Where("customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, paymentResponses(payments))
}

// GetCustomerBalance recomputes the customer ledger from the full
// appointment and payment history. Nothing is cached.
func GetCustomerBalance(c *gin.Context) {
	customerID, ok := parseID(c, "customerId")
	if !ok {
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, customerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var appointments []models.Appointment
	if err := database.DB.Where("customer_id = ?", customerID).Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	var payments []models.Payment
	if err := database.DB.Where("customer_id = ?", customerID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	balance := salon.CustomerBalance(appointments, payments)

	c.JSON(http.StatusOK, models.CustomerBalanceResponse{
		CustomerID:        customer.ID,
		CustomerName:      customer.FullName,
		TotalAgreedAmount: balance.TotalAgreed,
		TotalPaidAmount:   balance.TotalPaid,
		PendingAmount:     balance.Pending,
		RemainingDebt:     balance.RemainingDebt,
		OverPaid:          balance.OverPaid,
		TotalPayments:     balance.TotalPayments,
		LastPaymentDate:   balance.LastPaymentDate,
	})
}

// GetAppointmentPaymentStatus sums the paid installments of one appointment
// against its agreed price
func GetAppointmentPaymentStatus(c *gin.Context) {
	appointmentID, ok := parseID(c, "appointmentId")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service").
		First(&appointment, appointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var payments []models.Payment
	if err := database.DB.
		Where("appointment_id = ? AND status = ?", appointmentID, models.PaymentStatusPaid).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	progress := salon.AppointmentPaymentProgress(appointment, payments)

	c.JSON(http.StatusOK, models.AppointmentPaymentStatusResponse{
		AppointmentID:   appointment.ID,
		CustomerName:    appointment.Customer.FullName,
		ServiceName:     appointment.Service.Name,
		AgreedPrice:     appointment.AgreedPrice,
		TotalPaid:       progress.TotalPaid,
		RemainingAmount: progress.Remaining,
		IsFullyPaid:     progress.FullyPaid,
		PaymentHistory:  paymentResponses(payments),
	})
}

// GetPendingPayments returns payments still awaiting collection
func GetPendingPayments(c *gin.Context) {
	var payments []models.Payment
	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		Where("status = ?", models.PaymentStatusPending).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, paymentResponses(payments))
}

// GetFilteredPayments filters by payment method and/or status
func GetFilteredPayments(c *gin.Context) {
	query := database.DB.
		Preload("Customer").
		Preload("Appointment.Service")

	if raw := c.Query("paymentMethod"); raw != "" {
		method, valid := models.ParsePaymentMethod(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
			return
		}
		query = query.Where("payment_method = ?", method)
	}

	if raw := c.Query("status"); raw != "" {
		status, valid := models.ParsePaymentStatus(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, paymentResponses(payments))
}

// CreatePayment records a general payment. Status defaults to paid when the
// body omits it; an explicit pending status is honored.
func CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if _, valid := models.ParsePaymentMethod(string(req.PaymentMethod)); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}

	status := req.Status
	if status == "" {
		status = models.PaymentStatusPaid
	} else if _, valid := models.ParsePaymentStatus(string(status)); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var customerCount int64
	database.DB.Model(&models.Customer{}).Where("id = ?", req.CustomerID).Count(&customerCount)
	if customerCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return
	}

	if req.AppointmentID != nil {
		var appointmentCount int64
		database.DB.Model(&models.Appointment{}).Where("id = ?", *req.AppointmentID).Count(&appointmentCount)
		if appointmentCount == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment not found"})
			return
		}
	}

	payment := models.Payment{
		CustomerID:    req.CustomerID,
		AppointmentID: req.AppointmentID,
		AmountPaid:    req.AmountPaid,
		PaymentDate:   time.Now(),
		PaymentMethod: req.PaymentMethod,
		Status:        status,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("❌ Failed to create payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		First(&payment, payment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment could not be loaded after creation"})
		return
	}

	log.Printf("✅ Payment recorded: %.2f for customer %d (ID: %d)", payment.AmountPaid, payment.CustomerID, payment.ID)

	response := models.NewPaymentResponse(payment)
	publishEvent(ws.EventPaymentRecorded, response)
	c.JSON(http.StatusCreated, response)
}

// AddPartialPayment records an installment against an appointment. The paid
// total may reach the agreed price but never exceed it.
func AddPartialPayment(c *gin.Context) {
	var req models.PartialPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if _, valid := models.ParsePaymentMethod(string(req.PaymentMethod)); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, req.AppointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var existingPayments []models.Payment
	if err := database.DB.
		Where("appointment_id = ? AND status = ?", req.AppointmentID, models.PaymentStatusPaid).
		Find(&existingPayments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	if err := salon.CheckPartialPayment(appointment, salon.PaidTotal(existingPayments), req.Amount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := models.Payment{
		CustomerID:    appointment.CustomerID,
		AppointmentID: &req.AppointmentID,
		AmountPaid:    req.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentStatusPaid,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("❌ Failed to create partial payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		First(&payment, payment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment could not be loaded after creation"})
		return
	}

	log.Printf("✅ Partial payment recorded: %.2f for appointment %d (ID: %d)", payment.AmountPaid, req.AppointmentID, payment.ID)

	response := models.NewPaymentResponse(payment)
	publishEvent(ws.EventPaymentRecorded, response)
	c.JSON(http.StatusOK, response)
}

// UpdatePayment replaces every editable field of a payment
func UpdatePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if _, valid := models.ParsePaymentMethod(string(req.PaymentMethod)); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}
	if _, valid := models.ParsePaymentStatus(string(req.Status)); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var customerCount int64
	database.DB.Model(&models.Customer{}).Where("id = ?", req.CustomerID).Count(&customerCount)
	if customerCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return
	}

	if req.AppointmentID != nil {
		var appointmentCount int64
		database.DB.Model(&models.Appointment{}).Where("id = ?", *req.AppointmentID).Count(&appointmentCount)
		if appointmentCount == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment not found"})
			return
		}
	}

	payment.CustomerID = req.CustomerID
	payment.AppointmentID = req.AppointmentID
	payment.AmountPaid = req.AmountPaid
	payment.PaymentDate = req.PaymentDate
	payment.PaymentMethod = req.PaymentMethod
	payment.Status = req.Status

	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("❌ Failed to update payment %d: %v", payment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPaymentStatus updates a payment's status (pending → paid and the like).
// The body is a bare status value.
func SetPaymentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var raw string
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	status, valid := models.ParsePaymentStatus(raw)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	payment.Status = status
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("❌ Failed to update payment %d status: %v", payment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePayment removes a payment record
func DeletePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if err := database.DB.Delete(&payment).Error; err != nil {
		log.Printf("❌ Failed to delete payment %d: %v", payment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}

	log.Printf("✅ Payment deleted (ID: %d)", payment.ID)
	c.Status(http.StatusNoContent)
}
