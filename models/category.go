package models

import (
	"time"
)

// ServiceCategory groups the salon's services (hair, skin care, nails, ...)
type ServiceCategory struct {
	ID        uint      `json:"categoryId" gorm:"primaryKey"`
	Name      string    `json:"categoryName" gorm:"type:varchar(100);not null;unique"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Services []Service `json:"services,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName specifies the table name for the ServiceCategory model
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// ServiceCategoryRequest represents the request structure for creating/updating categories
type ServiceCategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
}

// ServiceCategoryResponse is the list/detail projection with a service count
type ServiceCategoryResponse struct {
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ServiceCount int    `json:"serviceCount"`
}

// ServiceCategoryWithServicesResponse feeds the admin console dropdowns
type ServiceCategoryWithServicesResponse struct {
	CategoryID   uint                     `json:"categoryId"`
	CategoryName string                   `json:"categoryName"`
	Services     []ServiceSummaryResponse `json:"services"`
}
