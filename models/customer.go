package models

import (
	"time"
)

// Customer is the aggregate root for billing: appointments and payments
// both reference it.
type Customer struct {
	ID          uint      `json:"customerId" gorm:"primaryKey"`
	FullName    string    `json:"fullName" gorm:"type:varchar(200);not null"`
	PhoneNumber string    `json:"phoneNumber" gorm:"type:varchar(30)"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:CustomerID"`
	Payments     []Payment     `json:"payments,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerRequest represents the request structure for creating/updating customers
type CustomerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Notes       string `json:"notes"`
}

// CustomerSummaryResponse is the flat list/search projection
type CustomerSummaryResponse struct {
	CustomerID  uint   `json:"customerId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Notes       string `json:"notes"`
}

// CustomerDetailResponse is the per-customer projection with recomputed stats
type CustomerDetailResponse struct {
	CustomerID            uint       `json:"customerId"`
	FullName              string     `json:"fullName"`
	PhoneNumber           string     `json:"phoneNumber"`
	Notes                 string     `json:"notes"`
	TotalAppointments     int        `json:"totalAppointments"`
	CompletedAppointments int        `json:"completedAppointments"`
	TotalSpent            float64    `json:"totalSpent"`
	RemainingDebt         float64    `json:"remainingDebt"`
	LastVisit             *time.Time `json:"lastVisit"`
}
