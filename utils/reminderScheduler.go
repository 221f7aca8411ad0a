package utils

import (
	"fmt"
	"log"
	"protrack/config"
	"protrack/database"
	"protrack/models"
	"protrack/models/training"
	"protrack/services"
	"time"

	"github.com/robfig/cron/v3"
)

// logReminder logs reminder scheduler events with timestamp
func logReminder(message string) {
	log.Printf("[REMINDER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReminderScheduler runs the daily incomplete-course reminder job.
// Schedule comes from REMINDER_CRON (default 09:00 daily).
func StartReminderScheduler() {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.ReminderCronSpec, NotifyIncompleteCourses); err != nil {
		logReminder("Failed to register reminder job: " + err.Error())
		return
	}

	c.Start()
	logReminder("Reminder scheduler started (" + config.AppConfig.ReminderCronSpec + ")")
}

// NotifyIncompleteCourses nudges users whose enrollments have sat in
// enrolled/in_progress below 100% for longer than the configured window.
// Preference gating happens in the dispatcher; users already reminded
// about an enrollment in the last 7 days are skipped.
func NotifyIncompleteCourses() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.ReminderAfterDays)

	var enrollments []training.Enrollment
	if err := db.Where("status IN ? AND progress_percentage < ? AND updated_at < ? AND is_deleted = ?",
		[]string{training.StatusEnrolled, training.StatusInProgress}, 100, cutoff, false).
		Find(&enrollments).Error; err != nil {
		logReminder("Error fetching stale enrollments: " + err.Error())
		return
	}

	notified := 0
	skipped := 0
	for i := range enrollments {
		enrollment := enrollments[i]

		var recent int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND notification_type = ? AND enrollment_id = ? AND created_at >= ?",
				enrollment.UserID, models.NotifyReminder, enrollment.ID, time.Now().AddDate(0, 0, -7)).
			Count(&recent)
		if recent > 0 {
			skipped++
			continue
		}

		var course training.TrainingCourse
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&course).Error; err != nil {
			skipped++
			continue
		}

		result := services.Dispatch(db, enrollment.UserID, services.Event{
			Type:         models.NotifyReminder,
			Title:        "Continue Your Training: " + course.Title,
			Message:      fmt.Sprintf("You've made %d%% progress in \"%s\". Keep going to complete your training!", enrollment.ProgressPercentage, course.Title),
			Link:         fmt.Sprintf("/training/course/%d/", course.ID),
			EnrollmentID: &enrollment.ID,
		})
		if result.InAppCreated || result.EmailSent {
			notified++
		} else {
			skipped++
		}
	}

	logReminder(fmt.Sprintf("Reminders done: %d notified, %d skipped", notified, skipped))
}
