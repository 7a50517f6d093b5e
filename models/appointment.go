package models

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// ParseAppointmentStatus maps a wire value to the closed status set.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return AppointmentStatus(s), true
	}
	return "", false
}

// Display returns the localized status label shown by the admin console
func (s AppointmentStatus) Display() string {
	switch s {
	case AppointmentStatusScheduled:
		return "Planlandı"
	case AppointmentStatusConfirmed:
		return "Onaylandı"
	case AppointmentStatusCompleted:
		return "Tamamlandı"
	case AppointmentStatusCancelled:
		return "İptal"
	case AppointmentStatusNoShow:
		return "Gelmedi"
	}
	return string(s)
}

// Appointment books a customer for a service at one exact instant.
// AgreedPrice is the price snapshot taken at booking time and is independent
// of later service price changes.
type Appointment struct {
	ID                uint              `json:"appointmentId" gorm:"primaryKey"`
	CustomerID        uint              `json:"customerId" gorm:"not null"`
	ServiceID         uint              `json:"serviceId" gorm:"not null"`
	AgreedPrice       float64           `json:"agreedPrice" gorm:"type:decimal(10,2);not null"`
	TotalSessions     int               `json:"totalSessions" gorm:"not null;default:1"`
	RemainingSessions int               `json:"remainingSessions" gorm:"not null;default:0"`
	AppointmentDate   time.Time         `json:"appointmentDate" gorm:"not null"`
	Status            AppointmentStatus `json:"status" gorm:"type:varchar(20);default:'scheduled';check:status IN ('scheduled','confirmed','completed','cancelled','no_show')"`
	CreatedAt         time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time         `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Service  Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// CreateAppointmentRequest represents the booking request body
type CreateAppointmentRequest struct {
	CustomerID      uint      `json:"customerId" binding:"required"`
	ServiceID       uint      `json:"serviceId" binding:"required"`
	AgreedPrice     float64   `json:"agreedPrice" binding:"required,gt=0"`
	TotalSessions   int       `json:"totalSessions" binding:"required,min=1"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
}

// UpdateAppointmentRequest is the full-replacement body; session counts and
// status are overwritten as sent.
type UpdateAppointmentRequest struct {
	CustomerID        uint              `json:"customerId" binding:"required"`
	ServiceID         uint              `json:"serviceId" binding:"required"`
	AgreedPrice       float64           `json:"agreedPrice" binding:"required,gt=0"`
	TotalSessions     int               `json:"totalSessions" binding:"required,min=1"`
	RemainingSessions int               `json:"remainingSessions" binding:"min=0"`
	AppointmentDate   time.Time         `json:"appointmentDate" binding:"required"`
	Status            AppointmentStatus `json:"status" binding:"required"`
}

// AppointmentResponse is the read projection joining customer/service names
type AppointmentResponse struct {
	AppointmentID     uint              `json:"appointmentId"`
	CustomerID        uint              `json:"customerId"`
	CustomerName      string            `json:"customerName"`
	CustomerPhone     string            `json:"customerPhone"`
	ServiceID         uint              `json:"serviceId"`
	ServiceName       string            `json:"serviceName"`
	CategoryName      string            `json:"categoryName"`
	AgreedPrice       float64           `json:"agreedPrice"`
	TotalSessions     int               `json:"totalSessions"`
	RemainingSessions int               `json:"remainingSessions"`
	AppointmentDate   time.Time         `json:"appointmentDate"`
	Status            AppointmentStatus `json:"status"`
	StatusDisplay     string            `json:"statusDisplay"`
}

// AppointmentCalendarResponse is the compact projection for the calendar view
type AppointmentCalendarResponse struct {
	AppointmentID   uint              `json:"appointmentId"`
	CustomerName    string            `json:"customerName"`
	ServiceName     string            `json:"serviceName"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	Status          AppointmentStatus `json:"status"`
}

// NewAppointmentResponse projects a preloaded appointment row
func NewAppointmentResponse(a Appointment) AppointmentResponse {
	return AppointmentResponse{
		AppointmentID:     a.ID,
		CustomerID:        a.CustomerID,
		CustomerName:      a.Customer.FullName,
		CustomerPhone:     a.Customer.PhoneNumber,
		ServiceID:         a.ServiceID,
		ServiceName:       a.Service.Name,
		CategoryName:      a.Service.Category.Name,
		AgreedPrice:       a.AgreedPrice,
		TotalSessions:     a.TotalSessions,
		RemainingSessions: a.RemainingSessions,
		AppointmentDate:   a.AppointmentDate,
		Status:            a.Status,
		StatusDisplay:     a.Status.Display(),
	}
}
