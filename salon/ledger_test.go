package salon

import (
	"errors"
	"testing"
	"time"

	"beauty-salon-server/models"
)

func TestCustomerBalanceSumsAllStatuses(t *testing.T) {
	appointments := []models.Appointment{
		{AgreedPrice: 100, Status: models.AppointmentStatusCompleted},
		{AgreedPrice: 200, Status: models.AppointmentStatusScheduled},
		// Cancelled bookings still count toward the agreed total
		{AgreedPrice: 50, Status: models.AppointmentStatusCancelled},
	}
	payments := []models.Payment{
		{AmountPaid: 100, Status: models.PaymentStatusPaid, PaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
		{AmountPaid: 30, Status: models.PaymentStatusPending, PaymentDate: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)},
		{AmountPaid: 20, Status: models.PaymentStatusCancelled, PaymentDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	b := CustomerBalance(appointments, payments)

	if b.TotalAgreed != 350 {
		t.Fatalf("expected total agreed 350, got %.2f", b.TotalAgreed)
	}
	if b.TotalPaid != 100 {
		t.Fatalf("expected total paid 100, got %.2f", b.TotalPaid)
	}
	if b.Pending != 30 {
		t.Fatalf("expected pending 30, got %.2f", b.Pending)
	}
	if b.RemainingDebt != 250 {
		t.Fatalf("expected remaining debt 250, got %.2f", b.RemainingDebt)
	}
	if b.OverPaid != 0 {
		t.Fatalf("expected no overpayment, got %.2f", b.OverPaid)
	}
	if b.TotalPayments != 3 {
		t.Fatalf("expected 3 payments, got %d", b.TotalPayments)
	}
	if b.LastPaymentDate == nil || !b.LastPaymentDate.Equal(payments[1].PaymentDate) {
		t.Fatalf("expected last payment date %v, got %v", payments[1].PaymentDate, b.LastPaymentDate)
	}
}

func TestCustomerBalanceOverpaid(t *testing.T) {
	appointments := []models.Appointment{
		{AgreedPrice: 100, Status: models.AppointmentStatusCompleted},
	}
	payments := []models.Payment{
		{AmountPaid: 150, Status: models.PaymentStatusPaid, PaymentDate: time.Now()},
	}

	b := CustomerBalance(appointments, payments)

	if b.RemainingDebt != 0 {
		t.Fatalf("debt must floor at zero, got %.2f", b.RemainingDebt)
	}
	if b.OverPaid != 50 {
		t.Fatalf("expected overpaid 50, got %.2f", b.OverPaid)
	}
}

func TestCustomerBalanceEmptyHistory(t *testing.T) {
	b := CustomerBalance(nil, nil)

	if b.TotalAgreed != 0 || b.TotalPaid != 0 || b.RemainingDebt != 0 {
		t.Fatalf("expected zero balance, got %+v", b)
	}
	if b.LastPaymentDate != nil {
		t.Fatalf("expected nil last payment date, got %v", b.LastPaymentDate)
	}
}

func TestAppointmentPaymentProgress(t *testing.T) {
	a := models.Appointment{AgreedPrice: 100}
	payments := []models.Payment{
		{AmountPaid: 60, Status: models.PaymentStatusPaid},
		{AmountPaid: 15, Status: models.PaymentStatusPaid},
		// Pending installments do not count toward the paid total
		{AmountPaid: 25, Status: models.PaymentStatusPending},
	}

	progress := AppointmentPaymentProgress(a, payments)

	if progress.TotalPaid != 75 {
		t.Fatalf("expected total paid 75, got %.2f", progress.TotalPaid)
	}
	if progress.Remaining != 25 {
		t.Fatalf("expected remaining 25, got %.2f", progress.Remaining)
	}
	if progress.FullyPaid {
		t.Fatal("75 of 100 must not count as fully paid")
	}
}

func TestAppointmentPaymentProgressOverpaid(t *testing.T) {
	a := models.Appointment{AgreedPrice: 100}
	payments := []models.Payment{
		{AmountPaid: 120, Status: models.PaymentStatusPaid},
	}

	progress := AppointmentPaymentProgress(a, payments)

	if progress.Remaining != 0 {
		t.Fatalf("remaining must floor at zero for display, got %.2f", progress.Remaining)
	}
	if !progress.FullyPaid {
		t.Fatal("an overpaid appointment still counts as fully paid")
	}
}

func TestCheckPartialPayment(t *testing.T) {
	a := models.Appointment{AgreedPrice: 100}

	if err := CheckPartialPayment(a, 60, 40); err != nil {
		t.Fatalf("reaching the agreed price exactly must be allowed: %v", err)
	}
	if err := CheckPartialPayment(a, 60, 40.01); !errors.Is(err, ErrExceedsAgreedPrice) {
		t.Fatalf("expected ErrExceedsAgreedPrice, got %v", err)
	}
	if err := CheckPartialPayment(a, 0, 100); err != nil {
		t.Fatalf("full payment in one installment must be allowed: %v", err)
	}
}

func TestCustomerStats(t *testing.T) {
	early := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	future := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		{AgreedPrice: 100, Status: models.AppointmentStatusCompleted, AppointmentDate: early},
		{AgreedPrice: 200, Status: models.AppointmentStatusCompleted, AppointmentDate: late},
		// Scheduled visits never count as a last visit
		{AgreedPrice: 300, Status: models.AppointmentStatusScheduled, AppointmentDate: future},
	}
	payments := []models.Payment{
		{AmountPaid: 250, Status: models.PaymentStatusPaid},
	}

	s := CustomerStats(appointments, payments)

	if s.TotalAppointments != 3 {
		t.Fatalf("expected 3 appointments, got %d", s.TotalAppointments)
	}
	if s.CompletedAppointments != 2 {
		t.Fatalf("expected 2 completed, got %d", s.CompletedAppointments)
	}
	if s.TotalSpent != 250 {
		t.Fatalf("expected total spent 250, got %.2f", s.TotalSpent)
	}
	if s.RemainingDebt != 350 {
		t.Fatalf("expected remaining debt 350, got %.2f", s.RemainingDebt)
	}
	if s.LastVisit == nil || !s.LastVisit.Equal(late) {
		t.Fatalf("expected last visit %v, got %v", late, s.LastVisit)
	}
}

func TestCustomerStatsNegativeDebtShowsCredit(t *testing.T) {
	appointments := []models.Appointment{
		{AgreedPrice: 100, Status: models.AppointmentStatusCompleted},
	}
	payments := []models.Payment{
		{AmountPaid: 180, Status: models.PaymentStatusPaid},
	}

	s := CustomerStats(appointments, payments)

	// The detail page renders credit as a negative debt, so no flooring here
	if s.RemainingDebt != -80 {
		t.Fatalf("expected remaining debt -80, got %.2f", s.RemainingDebt)
	}
}
