package services

import (
	"log"
	"protrack/models"

	"gorm.io/gorm"
)

// SendMail is the outbound mail transport. main wires it to the email
// service; when nil, the email channel is silently disabled. Dispatch
// treats every transport error as best-effort: it lands in the
// DispatchResult and is logged by the caller, never returned.
var SendMail func(to []string, subject, body string) error

// Event describes one notification fan-out trigger
type Event struct {
	Type          string // enrollment, completion, certificate, reminder, ...
	Title         string
	Message       string
	Link          string
	EnrollmentID  *uint
	CertificateID *uint
}

// DispatchResult reports per-channel outcomes of a fan-out
type DispatchResult struct {
	Event        string
	InAppCreated bool
	InAppErr     error
	EmailSent    bool
	EmailErr     error
}

// EnsurePreferences returns the user's notification preferences, creating
// the all-true default row if none exists yet. Idempotent.
func EnsurePreferences(db *gorm.DB, userID uint) (*models.NotificationPreference, error) {
	var prefs models.NotificationPreference
	err := db.Where("user_id = ?", userID).First(&prefs).Error
	if err == nil {
		return &prefs, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	prefs = models.NotificationPreference{
		UserID:              userID,
		NotifyOnEnrollment:  true,
		NotifyOnCompletion:  true,
		NotifyOnCertificate: true,
		NotifyOnReminder:    true,
		EmailOnEnrollment:   true,
		EmailOnCompletion:   true,
		EmailOnCertificate:  true,
		EmailOnReminder:     true,
	}
	if err := db.Create(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Dispatch fans one event out to the in-app and email channels, each
// independently gated by the user's preference flags. It never fails the
// caller: channel errors are collected in the result so the triggering
// state change cannot roll back because a notification failed.
func Dispatch(db *gorm.DB, userID uint, ev Event) DispatchResult {
	result := DispatchResult{Event: ev.Type}

	prefs, err := EnsurePreferences(db, userID)
	if err != nil {
		// Without a preference row every flag defaults to on
		log.Printf("[NOTIFY] failed to load preferences for user %d: %v", userID, err)
		prefs = &models.NotificationPreference{}
	}

	if prefs.ID == 0 || prefs.Enabled(ev.Type, models.ChannelInApp) {
		notification := models.Notification{
			UserID:           userID,
			NotificationType: ev.Type,
			Title:            ev.Title,
			Message:          ev.Message,
			Link:             ev.Link,
			EnrollmentID:     ev.EnrollmentID,
			CertificateID:    ev.CertificateID,
		}
		if err := db.Create(&notification).Error; err != nil {
			result.InAppErr = err
		} else {
			result.InAppCreated = true
		}
	}

	if prefs.ID == 0 || prefs.Enabled(ev.Type, models.ChannelEmail) {
		if SendMail != nil {
			var user models.User
			if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
				result.EmailErr = err
			} else if user.Email != "" {
				if err := SendMail([]string{user.Email}, ev.Title, ev.Message); err != nil {
					result.EmailErr = err
				} else {
					result.EmailSent = true
				}
			}
		}
	}

	return result
}

// logDispatch is the shared caller-side logging for best-effort fan-out
func logDispatch(userID uint, r DispatchResult) {
	if r.InAppErr != nil {
		log.Printf("[NOTIFY] in-app %s notification for user %d failed: %v", r.Event, userID, r.InAppErr)
	}
	if r.EmailErr != nil {
		log.Printf("[NOTIFY] %s email for user %d failed: %v", r.Event, userID, r.EmailErr)
	}
}
