// Package jobs runs the background tickers that keep the salon console
// current without user interaction.
package jobs

import (
	"log"
	"time"

	"beauty-salon-server/config"
	"beauty-salon-server/database"
	"beauty-salon-server/models"
	ws "beauty-salon-server/websocket"
)

// ReminderJob scans for appointments whose start time is inside the
// configured lead window and pushes a reminder event for each one, once.
type ReminderJob struct {
	hub      *ws.Hub
	stopChan chan struct{}

	// appointment IDs already reminded this process lifetime
	notified map[uint]bool
}

// NewReminderJob creates a reminder job publishing to the given hub
func NewReminderJob(hub *ws.Hub) *ReminderJob {
	return &ReminderJob{
		hub:      hub,
		stopChan: make(chan struct{}),
		notified: make(map[uint]bool),
	}
}

// Start begins the periodic reminder scan
func (j *ReminderJob) Start() {
	log.Println("⏰ Reminder job started")
	go j.run()
}

// Stop terminates the reminder job
func (j *ReminderJob) Stop() {
	close(j.stopChan)
	log.Println("⏰ Reminder job stopped")
}

func (j *ReminderJob) run() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	j.scan()

	for {
		select {
		case <-ticker.C:
			j.scan()
		case <-j.stopChan:
			return
		}
	}
}

func (j *ReminderJob) scan() {
	lead := time.Duration(config.AppConfig.Reminder.LeadMinutes) * time.Minute
	now := time.Now()
	windowEnd := now.Add(lead)

	var appointments []models.Appointment
	err := database.DB.
		Preload("Customer").
		Preload("Service").
		Where("appointment_date > ? AND appointment_date <= ?", now, windowEnd).
		Where("status IN ?", []models.AppointmentStatus{
			models.AppointmentStatusScheduled,
			models.AppointmentStatusConfirmed,
		}).
		Find(&appointments).Error
	if err != nil {
		log.Printf("❌ Reminder scan failed: %v", err)
		return
	}

	for _, appointment := range appointments {
		if j.notified[appointment.ID] {
			continue
		}
		j.notified[appointment.ID] = true

		log.Printf("⏰ Reminder: %s has %s at %s",
			appointment.Customer.FullName,
			appointment.Service.Name,
			appointment.AppointmentDate.Format("15:04"))

		if j.hub != nil {
			j.hub.Publish(ws.EventReminder, models.NewAppointmentResponse(appointment))
		}
	}
}
