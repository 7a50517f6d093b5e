package salon

import (
	"errors"
	"time"

	"beauty-salon-server/models"
)

var ErrExceedsAgreedPrice = errors.New("Payment amount exceeds agreed price")

// Balance is the always-recomputed customer ledger. TotalAgreed sums the
// agreed price of every appointment including cancelled ones; the console
// has always rendered it that way.
type Balance struct {
	TotalAgreed     float64
	TotalPaid       float64
	Pending         float64
	RemainingDebt   float64
	OverPaid        float64
	TotalPayments   int
	LastPaymentDate *time.Time
}

// CustomerBalance derives the debt/credit summary from a customer's full
// appointment and payment history.
func CustomerBalance(appointments []models.Appointment, payments []models.Payment) Balance {
	var b Balance
	for _, a := range appointments {
		b.TotalAgreed += a.AgreedPrice
	}
	for i, p := range payments {
		switch p.Status {
		case models.PaymentStatusPaid:
			b.TotalPaid += p.AmountPaid
		case models.PaymentStatusPending:
			b.Pending += p.AmountPaid
		}
		if b.LastPaymentDate == nil || p.PaymentDate.After(*b.LastPaymentDate) {
			b.LastPaymentDate = &payments[i].PaymentDate
		}
	}
	b.TotalPayments = len(payments)
	if d := b.TotalAgreed - b.TotalPaid; d > 0 {
		b.RemainingDebt = d
	}
	if o := b.TotalPaid - b.TotalAgreed; o > 0 {
		b.OverPaid = o
	}
	return b
}

// PaymentProgress is the per-appointment ledger projection.
type PaymentProgress struct {
	TotalPaid float64
	// Remaining is floored at zero for display.
	Remaining float64
	// FullyPaid uses the unfloored remainder, so an overpayment still
	// counts as fully paid.
	FullyPaid bool
}

// AppointmentPaymentProgress sums the paid payments of one appointment
// against its agreed price.
func AppointmentPaymentProgress(a models.Appointment, payments []models.Payment) PaymentProgress {
	total := PaidTotal(payments)
	remaining := a.AgreedPrice - total
	progress := PaymentProgress{
		TotalPaid: total,
		FullyPaid: remaining <= 0,
	}
	if remaining > 0 {
		progress.Remaining = remaining
	}
	return progress
}

// PaidTotal sums AmountPaid over payments with status paid.
func PaidTotal(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == models.PaymentStatusPaid {
			total += p.AmountPaid
		}
	}
	return total
}

// CheckPartialPayment rejects an installment that would push the paid total
// past the agreed price. Reaching it exactly is allowed.
func CheckPartialPayment(a models.Appointment, existingPaid, amount float64) error {
	if existingPaid+amount > a.AgreedPrice {
		return ErrExceedsAgreedPrice
	}
	return nil
}

// Stats is the customer detail projection. Unlike Balance, RemainingDebt is
// not floored here: a customer in credit shows a negative debt.
type Stats struct {
	TotalAppointments     int
	CompletedAppointments int
	TotalSpent            float64
	RemainingDebt         float64
	LastVisit             *time.Time
}

// CustomerStats derives the detail-page counters from a customer's history.
// LastVisit is the latest completed appointment date.
func CustomerStats(appointments []models.Appointment, payments []models.Payment) Stats {
	s := Stats{TotalAppointments: len(appointments)}
	var totalAgreed float64
	for i, a := range appointments {
		totalAgreed += a.AgreedPrice
		if a.Status != models.AppointmentStatusCompleted {
			continue
		}
		s.CompletedAppointments++
		if s.LastVisit == nil || a.AppointmentDate.After(*s.LastVisit) {
			s.LastVisit = &appointments[i].AppointmentDate
		}
	}
	s.TotalSpent = PaidTotal(payments)
	s.RemainingDebt = totalAgreed - s.TotalSpent
	return s
}
