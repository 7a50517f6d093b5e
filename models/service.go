package models

import (
	"time"
)

// Service is a bookable salon treatment. Price is the current list price;
// appointments snapshot it into AgreedPrice at booking time.
type Service struct {
	ID         uint            `json:"serviceId" gorm:"primaryKey"`
	Name       string          `json:"serviceName" gorm:"type:varchar(200);not null;unique"`
	Price      float64         `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID uint            `json:"categoryId" gorm:"not null"`
	Category   ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceRequest represents the request structure for creating/updating services
type ServiceRequest struct {
	ServiceName string  `json:"serviceName" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  uint    `json:"categoryId" binding:"required"`
}

// ServiceResponse is the read projection joining the category name
type ServiceResponse struct {
	ServiceID    uint    `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	Price        float64 `json:"price"`
	CategoryID   uint    `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
}

// ServiceSummaryResponse is the compact projection used inside category responses
type ServiceSummaryResponse struct {
	ServiceID   uint    `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`
}
