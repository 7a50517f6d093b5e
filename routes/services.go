package routes

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
)

// RegisterServiceRoutes registers all service-related routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", GetServices)
	router.GET("/search", SearchServices)
	router.GET("/by-price-range", GetServicesByPriceRange)
	router.GET("/by-category/:categoryId", GetServicesByCategory)
	router.GET("/:id", GetService)
	router.POST("", CreateService)
	router.PUT("/:id", UpdateService)
	router.DELETE("/:id", DeleteService)
}

func serviceResponse(s models.Service) models.ServiceResponse {
	return models.ServiceResponse{
		ServiceID:    s.ID,
		ServiceName:  s.Name,
		Price:        s.Price,
		CategoryID:   s.CategoryID,
		CategoryName: s.Category.Name,
	}
}

// GetServices returns all services with their category names
func GetServices(c *gin.Context) {
	var services []models.Service
	if err := database.DB.Preload("Category").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	responses := make([]models.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, serviceResponse(service))
	}

	c.JSON(http.StatusOK, responses)
}

// GetService returns a specific service by ID
func GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := database.DB.Preload("Category").First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, serviceResponse(service))
}

// GetServicesByCategory returns services filtered by category
func GetServicesByCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "categoryId")
	if !ok {
		return
	}

	var count int64
	database.DB.Model(&models.ServiceCategory{}).Where("id = ?", categoryID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var services []models.Service
	if err := database.DB.Preload("Category").Where("category_id = ?", categoryID).Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	responses := make([]models.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, serviceResponse(service))
	}

	c.JSON(http.StatusOK, responses)
}

// SearchServices matches the query against service names
func SearchServices(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query cannot be empty"})
		return
	}

	var services []models.Service
	if err := database.DB.Preload("Category").Where("name LIKE ?", "%"+query+"%").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search services"})
		return
	}

	responses := make([]models.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, serviceResponse(service))
	}

	c.JSON(http.StatusOK, responses)
}

// GetServicesByPriceRange returns services within [minPrice, maxPrice],
// cheapest first
func GetServicesByPriceRange(c *gin.Context) {
	minPrice := 0.0
	maxPrice := math.MaxFloat64

	if raw := c.Query("minPrice"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
			return
		}
		minPrice = parsed
	}
	if raw := c.Query("maxPrice"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
			return
		}
		maxPrice = parsed
	}

	var services []models.Service
	if err := database.DB.
		Preload("Category").
		Where("price >= ? AND price <= ?", minPrice, maxPrice).
		Order("price ASC").
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	responses := make([]models.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, serviceResponse(service))
	}

	c.JSON(http.StatusOK, responses)
}

// CreateService creates a new service under an existing category
func CreateService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var categoryCount int64
	database.DB.Model(&models.ServiceCategory{}).Where("id = ?", req.CategoryID).Count(&categoryCount)
	if categoryCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}

	var existing int64
	database.DB.Model(&models.Service{}).Where("name = ?", req.ServiceName).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A service with this name already exists"})
		return
	}

	service := models.Service{
		Name:       req.ServiceName,
		Price:      req.Price,
		CategoryID: req.CategoryID,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	database.DB.Preload("Category").First(&service, service.ID)
	log.Printf("✅ Service created: %s (ID: %d)", service.Name, service.ID)

	c.JSON(http.StatusCreated, serviceResponse(service))
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var categoryCount int64
	database.DB.Model(&models.ServiceCategory{}).Where("id = ?", req.CategoryID).Count(&categoryCount)
	if categoryCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}

	var existing int64
	database.DB.Model(&models.Service{}).
		Where("name = ? AND id <> ?", req.ServiceName, id).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A service with this name already exists"})
		return
	}

	service.Name = req.ServiceName
	service.Price = req.Price
	service.CategoryID = req.CategoryID

	if err := database.DB.Save(&service).Error; err != nil {
		log.Printf("❌ Failed to update service %d: %v", service.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteService removes a service unless appointments still reference it
func DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := database.DB.First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var appointmentCount int64
	database.DB.Model(&models.Appointment{}).Where("service_id = ?", id).Count(&appointmentCount)
	if appointmentCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete service with existing appointments"})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		log.Printf("❌ Failed to delete service %d: %v", service.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	log.Printf("✅ Service deleted: %s (ID: %d)", service.Name, service.ID)
	c.Status(http.StatusNoContent)
}
