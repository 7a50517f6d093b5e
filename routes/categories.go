package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"beauty-salon-server/database"
	"beauty-salon-server/models"
)

// RegisterServiceCategoryRoutes registers all category-related routes
func RegisterServiceCategoryRoutes(router *gin.RouterGroup) {
	router.GET("", GetServiceCategories)
	router.GET("/with-services", GetCategoriesWithServices)
	router.GET("/:id", GetServiceCategory)
	router.POST("", CreateServiceCategory)
	router.PUT("/:id", UpdateServiceCategory)
	router.DELETE("/:id", DeleteServiceCategory)
	router.GET("/:id/services", GetCategoryServices)
}

// GetServiceCategories returns all categories with their service counts
func GetServiceCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := database.DB.Preload("Services").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	responses := make([]models.ServiceCategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, models.ServiceCategoryResponse{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			ServiceCount: len(category.Services),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetServiceCategory returns a specific category by ID
func GetServiceCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.ServiceCategory
	if err := database.DB.Preload("Services").First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, models.ServiceCategoryResponse{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		ServiceCount: len(category.Services),
	})
}

// GetCategoriesWithServices returns the full category tree for the console
// dropdowns
func GetCategoriesWithServices(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := database.DB.Preload("Services").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	responses := make([]models.ServiceCategoryWithServicesResponse, 0, len(categories))
	for _, category := range categories {
		services := make([]models.ServiceSummaryResponse, 0, len(category.Services))
		for _, service := range category.Services {
			services = append(services, models.ServiceSummaryResponse{
				ServiceID:   service.ID,
				ServiceName: service.Name,
				Price:       service.Price,
			})
		}
		responses = append(responses, models.ServiceCategoryWithServicesResponse{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Services:     services,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// CreateServiceCategory creates a new category with a unique name
func CreateServiceCategory(c *gin.Context) {
	var req models.ServiceCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var existing int64
	database.DB.Model(&models.ServiceCategory{}).Where("name = ?", req.CategoryName).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A category with this name already exists"})
		return
	}

	category := models.ServiceCategory{Name: req.CategoryName}
	if err := database.DB.Create(&category).Error; err != nil {
		log.Printf("❌ Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	log.Printf("✅ Category created: %s (ID: %d)", category.Name, category.ID)

	c.JSON(http.StatusCreated, models.ServiceCategoryResponse{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		ServiceCount: 0,
	})
}

// UpdateServiceCategory renames a category, keeping names unique
func UpdateServiceCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.ServiceCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var category models.ServiceCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var existing int64
	database.DB.Model(&models.ServiceCategory{}).
		Where("name = ? AND id <> ?", req.CategoryName, id).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A category with this name already exists"})
		return
	}

	category.Name = req.CategoryName
	if err := database.DB.Save(&category).Error; err != nil {
		log.Printf("❌ Failed to update category %d: %v", category.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteServiceCategory removes a category unless services still belong to it
func DeleteServiceCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.ServiceCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var serviceCount int64
	database.DB.Model(&models.Service{}).Where("category_id = ?", id).Count(&serviceCount)
	if serviceCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete category with existing services"})
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		log.Printf("❌ Failed to delete category %d: %v", category.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	log.Printf("✅ Category deleted: %s (ID: %d)", category.Name, category.ID)
	c.Status(http.StatusNoContent)
}

// GetCategoryServices returns the services belonging to one category
func GetCategoryServices(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var count int64
	database.DB.Model(&models.ServiceCategory{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var services []models.Service
	if err := database.DB.Where("category_id = ?", id).Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	responses := make([]models.ServiceSummaryResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, models.ServiceSummaryResponse{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			Price:       service.Price,
		})
	}

	c.JSON(http.StatusOK, responses)
}
