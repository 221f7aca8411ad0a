package models

import "gorm.io/gorm"

// Notification types
const (
	NotifyEnrollment   = "enrollment"
	NotifyCompletion   = "completion"
	NotifyCertificate  = "certificate"
	NotifyReminder     = "reminder"
	NotifyAnnouncement = "announcement"
	NotifySystem       = "system"
)

// Notification channels
const (
	ChannelInApp = "inapp"
	ChannelEmail = "email"
)

// Notification is an in-app notification row for a user
type Notification struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	NotificationType string `json:"notification_type" gorm:"default:'system'"`
	Title            string `json:"title"`
	Message          string `json:"message" gorm:"type:text"`
	Link             string `json:"link"`
	IsRead           bool   `json:"is_read" gorm:"default:false"`
	EnrollmentID     *uint  `json:"enrollment_id" gorm:"index"`
	CertificateID    *uint  `json:"certificate_id" gorm:"index"`
	IsDeleted        bool   `json:"-" gorm:"default:false"`
}

// NotificationPreference holds per-user toggles, one boolean per
// (event, channel) pair. Every flag defaults to true; rows are lazily
// created the first time a user's preferences are consulted.
type NotificationPreference struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	NotifyOnEnrollment  bool `json:"notify_on_enrollment" gorm:"default:true"`
	NotifyOnCompletion  bool `json:"notify_on_completion" gorm:"default:true"`
	NotifyOnCertificate bool `json:"notify_on_certificate" gorm:"default:true"`
	NotifyOnReminder    bool `json:"notify_on_reminder" gorm:"default:true"`

	EmailOnEnrollment  bool `json:"email_on_enrollment" gorm:"default:true"`
	EmailOnCompletion  bool `json:"email_on_completion" gorm:"default:true"`
	EmailOnCertificate bool `json:"email_on_certificate" gorm:"default:true"`
	EmailOnReminder    bool `json:"email_on_reminder" gorm:"default:true"`
}

// Enabled reports whether the given (event, channel) pair is switched on.
// Unknown pairs default to true so new event types are delivered until a
// user opts out.
func (p *NotificationPreference) Enabled(event, channel string) bool {
	flags := map[string]map[string]bool{
		NotifyEnrollment:  {ChannelInApp: p.NotifyOnEnrollment, ChannelEmail: p.EmailOnEnrollment},
		NotifyCompletion:  {ChannelInApp: p.NotifyOnCompletion, ChannelEmail: p.EmailOnCompletion},
		NotifyCertificate: {ChannelInApp: p.NotifyOnCertificate, ChannelEmail: p.EmailOnCertificate},
		NotifyReminder:    {ChannelInApp: p.NotifyOnReminder, ChannelEmail: p.EmailOnReminder},
	}
	byChannel, ok := flags[event]
	if !ok {
		return true
	}
	enabled, ok := byChannel[channel]
	if !ok {
		return true
	}
	return enabled
}
