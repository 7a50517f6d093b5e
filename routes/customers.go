package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
	"beauty-salon-server/salon"
)

// RegisterCustomerRoutes registers all customer-related routes
func RegisterCustomerRoutes(router *gin.RouterGroup) {
	router.GET("", GetCustomers)
	router.GET("/search", SearchCustomers)
	router.GET("/:id", GetCustomer)
	router.POST("", CreateCustomer)
	router.PUT("/:id", UpdateCustomer)
	router.DELETE("/:id", DeleteCustomer)
	router.GET("/:id/appointments", GetCustomerAppointments)
	router.GET("/:id/payments", GetCustomerPayments)
}

// GetCustomers returns the summary list of all customers
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	responses := make([]models.CustomerSummaryResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, models.CustomerSummaryResponse{
			CustomerID:  customer.ID,
			FullName:    customer.FullName,
			PhoneNumber: customer.PhoneNumber,
			Notes:       customer.Notes,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetCustomer returns the detail projection with recomputed visit/debt stats
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := database.DB.Preload("Appointments").Preload("Payments").First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	stats := salon.CustomerStats(customer.Appointments, customer.Payments)

	c.JSON(http.StatusOK, models.CustomerDetailResponse{
		CustomerID:            customer.ID,
		FullName:              customer.FullName,
		PhoneNumber:           customer.PhoneNumber,
		Notes:                 customer.Notes,
		TotalAppointments:     stats.TotalAppointments,
		CompletedAppointments: stats.CompletedAppointments,
		TotalSpent:            stats.TotalSpent,
		RemainingDebt:         stats.RemainingDebt,
		LastVisit:             stats.LastVisit,
	})
}

// SearchCustomers matches the query against name or phone number
func SearchCustomers(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query cannot be empty"})
		return
	}

	var customers []models.Customer
	pattern := "%" + query + "%"
	if err := database.DB.Where("full_name LIKE ? OR phone_number LIKE ?", pattern, pattern).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
		return
	}

	responses := make([]models.CustomerSummaryResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, models.CustomerSummaryResponse{
			CustomerID:  customer.ID,
			FullName:    customer.FullName,
			PhoneNumber: customer.PhoneNumber,
			Notes:       customer.Notes,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	var req models.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer := models.Customer{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Notes:       req.Notes,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		log.Printf("❌ Failed to create customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	log.Printf("✅ Customer created: %s (ID: %d)", customer.FullName, customer.ID)

	c.JSON(http.StatusCreated, models.CustomerSummaryResponse{
		CustomerID:  customer.ID,
		FullName:    customer.FullName,
		PhoneNumber: customer.PhoneNumber,
		Notes:       customer.Notes,
	})
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	customer.FullName = req.FullName
	customer.PhoneNumber = req.PhoneNumber
	customer.Notes = req.Notes

	if err := database.DB.Save(&customer).Error; err != nil {
		log.Printf("❌ Failed to update customer %d: %v", customer.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCustomer removes a customer unless appointments or payments still
// reference it
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var appointmentCount, paymentCount int64
	database.DB.Model(&models.Appointment{}).Where("customer_id = ?", id).Count(&appointmentCount)
	database.DB.Model(&models.Payment{}).Where("customer_id = ?", id).Count(&paymentCount)

	if appointmentCount > 0 || paymentCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete customer with existing appointments or payments"})
		return
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		log.Printf("❌ Failed to delete customer %d: %v", customer.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	log.Printf("✅ Customer deleted: %s (ID: %d)", customer.FullName, customer.ID)
	c.Status(http.StatusNoContent)
}

// GetCustomerAppointments returns one customer's appointments, newest first
func GetCustomerAppointments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var count int64
	database.DB.Model(&models.Customer{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var appointments []models.Appointment
	if err := database.DB.
		Preload("Customer").
		Preload("Service.Category").
		Where("customer_id = ?", id).
		Order("appointment_date DESC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	responses := make([]models.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, models.NewAppointmentResponse(appointment))
	}

	c.JSON(http.StatusOK, responses)
}

// GetCustomerPayments returns one customer's payments, newest first
func GetCustomerPayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var count int64
	database.DB.Model(&models.Customer{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var payments []models.Payment
	if err := database.DB.
		Preload("Customer").
		Preload("Appointment.Service").
		Where("customer_id = ?", id).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	responses := make([]models.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, models.NewPaymentResponse(payment))
	}

	c.JSON(http.StatusOK, responses)
}
