// Package salon holds the booking lifecycle and payment ledger rules. The
// functions here are pure: they operate on already-loaded rows and leave
// persistence to the callers.
package salon

import (
	"errors"

	"beauty-salon-server/models"
)

var (
	ErrOnlyScheduledConfirmable = errors.New("Only scheduled appointments can be confirmed")
	ErrNotCompletable           = errors.New("Only confirmed or scheduled appointments can be completed")
)

// applyStatus is the single place a status value is written. Entering
// completed from any other state consumes one session, floored at zero.
// Re-applying completed does not consume another.
func applyStatus(a *models.Appointment, status models.AppointmentStatus) {
	if status == models.AppointmentStatusCompleted &&
		a.Status != models.AppointmentStatusCompleted &&
		a.RemainingSessions > 0 {
		a.RemainingSessions--
	}
	a.Status = status
}

// Confirm moves a scheduled appointment to confirmed.
func Confirm(a *models.Appointment) error {
	if a.Status != models.AppointmentStatusScheduled {
		return ErrOnlyScheduledConfirmable
	}
	applyStatus(a, models.AppointmentStatusConfirmed)
	return nil
}

// Complete finishes a visit: scheduled or confirmed appointments only.
func Complete(a *models.Appointment) error {
	if a.Status != models.AppointmentStatusConfirmed && a.Status != models.AppointmentStatusScheduled {
		return ErrNotCompletable
	}
	applyStatus(a, models.AppointmentStatusCompleted)
	return nil
}

// Cancel is legal from any state. Cancelling twice is a no-op overwrite.
// A cancelled appointment frees its time slot for rebooking.
func Cancel(a *models.Appointment) {
	applyStatus(a, models.AppointmentStatusCancelled)
}

// ForceStatus is the administrative correction path: it sets any target
// status without lifecycle guards. It shares applyStatus with the guarded
// transitions, so entering completed still consumes a session and the
// counter cannot drift between the two paths. Re-applying completed to an
// already-completed booking is deliberately a no-op: only a genuine
// transition into completed consumes a session, so repeated force-sets
// cannot drain the counter.
func ForceStatus(a *models.Appointment, status models.AppointmentStatus) {
	applyStatus(a, status)
}
