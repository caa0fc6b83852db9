package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/models"
	"github.com/asifrahman/collab_study/notifications"
)

// SendClassReminders mails every booked student whose class starts in about
// an hour. The 60-65 minute window matches the 5-minute cron cadence so each
// booking is picked up exactly once.
func SendClassReminders() {
	log.Println("Running job: SendClassReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking
	err := database.DB.
		Where("status = ? AND class_start BETWEEN ? AND ?", "booked", lowerBound, upperBound).
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming classes: %v", err)
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		emailSubject := "Reminder: Your Class Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Class Reminder</h1><p>Hi there,</p><p>Your session \"%s\" with %s starts at %s.</p>",
			booking.SessionTitle,
			booking.TutorName,
			booking.ClassStart.Format(time.Kitchen),
		)
		if booking.DriveLink != "" {
			emailBody += fmt.Sprintf("<p><b>Study materials:</b> <a href='%s'>Open</a></p>", booking.DriveLink)
		}

		go notifications.SendEmail("", booking.UserEmail, emailSubject, emailBody)
	}
}
