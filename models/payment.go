package models

import (
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// ParsePaymentMethod maps a wire value to the closed method set.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer:
		return PaymentMethod(s), true
	}
	return "", false
}

// Display returns the localized payment method label
func (m PaymentMethod) Display() string {
	switch m {
	case PaymentMethodCash:
		return "Nakit"
	case PaymentMethodCreditCard:
		return "Kredi Kartı"
	case PaymentMethodDebitCard:
		return "Banka Kartı"
	case PaymentMethodBankTransfer:
		return "Havale"
	}
	return string(m)
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ParsePaymentStatus maps a wire value to the closed status set.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled, PaymentStatusRefunded:
		return PaymentStatus(s), true
	}
	return "", false
}

// Display returns the localized payment status label
func (s PaymentStatus) Display() string {
	switch s {
	case PaymentStatusPending:
		return "Bekliyor"
	case PaymentStatusPaid:
		return "Ödendi"
	case PaymentStatusCancelled:
		return "İptal"
	case PaymentStatusRefunded:
		return "İade"
	}
	return string(s)
}

// Payment is a financial record owned by a customer. AppointmentID is
// nullable: a payment may be general or cross-reference one booking.
type Payment struct {
	ID            uint          `json:"paymentId" gorm:"primaryKey"`
	CustomerID    uint          `json:"customerId" gorm:"not null"`
	AppointmentID *uint         `json:"appointmentId"`
	AmountPaid    float64       `json:"amountPaid" gorm:"type:decimal(10,2);not null"`
	PaymentDate   time.Time     `json:"paymentDate" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);not null;check:payment_method IN ('cash','credit_card','debit_card','bank_transfer')"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);default:'paid';check:status IN ('pending','paid','cancelled','refunded')"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Customer    Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Appointment *Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// CreatePaymentRequest represents the general payment creation body.
// Status is optional; it defaults to paid when omitted.
type CreatePaymentRequest struct {
	CustomerID    uint          `json:"customerId" binding:"required"`
	AppointmentID *uint         `json:"appointmentId"`
	AmountPaid    float64       `json:"amountPaid" binding:"required,gt=0"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
	Status        PaymentStatus `json:"status"`
}

// UpdatePaymentRequest is the full-replacement body for a payment
type UpdatePaymentRequest struct {
	CustomerID    uint          `json:"customerId" binding:"required"`
	AppointmentID *uint         `json:"appointmentId"`
	AmountPaid    float64       `json:"amountPaid" binding:"required,gt=0"`
	PaymentDate   time.Time     `json:"paymentDate" binding:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
	Status        PaymentStatus `json:"status" binding:"required"`
}

// PartialPaymentRequest records an installment against one appointment
type PartialPaymentRequest struct {
	AppointmentID uint          `json:"appointmentId" binding:"required"`
	Amount        float64       `json:"amount" binding:"required,gt=0"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
}

// PaymentResponse is the read projection joining customer/service names
type PaymentResponse struct {
	PaymentID            uint          `json:"paymentId"`
	CustomerID           uint          `json:"customerId"`
	CustomerName         string        `json:"customerName"`
	AppointmentID        *uint         `json:"appointmentId"`
	ServiceName          string        `json:"serviceName,omitempty"`
	AmountPaid           float64       `json:"amountPaid"`
	PaymentDate          time.Time     `json:"paymentDate"`
	PaymentMethod        PaymentMethod `json:"paymentMethod"`
	PaymentMethodDisplay string        `json:"paymentMethodDisplay"`
	Status               PaymentStatus `json:"status"`
	StatusDisplay        string        `json:"statusDisplay"`
}

// NewPaymentResponse projects a preloaded payment row
func NewPaymentResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:            p.ID,
		CustomerID:           p.CustomerID,
		CustomerName:         p.Customer.FullName,
		AppointmentID:        p.AppointmentID,
		AmountPaid:           p.AmountPaid,
		PaymentDate:          p.PaymentDate,
		PaymentMethod:        p.PaymentMethod,
		PaymentMethodDisplay: p.PaymentMethod.Display(),
		Status:               p.Status,
		StatusDisplay:        p.Status.Display(),
	}
	if p.Appointment != nil {
		resp.ServiceName = p.Appointment.Service.Name
	}
	return resp
}

// CustomerBalanceResponse is the per-customer ledger projection
type CustomerBalanceResponse struct {
	CustomerID        uint       `json:"customerId"`
	CustomerName      string     `json:"customerName"`
	TotalAgreedAmount float64    `json:"totalAgreedAmount"`
	TotalPaidAmount   float64    `json:"totalPaidAmount"`
	PendingAmount     float64    `json:"pendingAmount"`
	RemainingDebt     float64    `json:"remainingDebt"`
	OverPaid          float64    `json:"overPaid"`
	TotalPayments     int        `json:"totalPayments"`
	LastPaymentDate   *time.Time `json:"lastPaymentDate"`
}

// AppointmentPaymentStatusResponse is the per-appointment ledger projection
type AppointmentPaymentStatusResponse struct {
	AppointmentID   uint              `json:"appointmentId"`
	CustomerName    string            `json:"customerName"`
	ServiceName     string            `json:"serviceName"`
	AgreedPrice     float64           `json:"agreedPrice"`
	TotalPaid       float64           `json:"totalPaid"`
	RemainingAmount float64           `json:"remainingAmount"`
	IsFullyPaid     bool              `json:"isFullyPaid"`
	PaymentHistory  []PaymentResponse `json:"paymentHistory"`
}
