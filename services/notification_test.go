package services

import (
	"fmt"
	"protrack/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
}

func captureMail(t *testing.T) *[]sentMail {
	t.Helper()

	var sent []sentMail
	prev := SendMail
	SendMail = func(to []string, subject, body string) error {
		sent = append(sent, sentMail{to: to, subject: subject})
		return nil
	}
	t.Cleanup(func() { SendMail = prev })
	return &sent
}

func TestEnsurePreferencesDefaultsAndIdempotence(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")

	prefs, err := EnsurePreferences(db, user.ID)
	require.NoError(t, err)
	assert.True(t, prefs.NotifyOnEnrollment)
	assert.True(t, prefs.NotifyOnCompletion)
	assert.True(t, prefs.NotifyOnCertificate)
	assert.True(t, prefs.NotifyOnReminder)
	assert.True(t, prefs.EmailOnEnrollment)
	assert.True(t, prefs.EmailOnCompletion)
	assert.True(t, prefs.EmailOnCertificate)
	assert.True(t, prefs.EmailOnReminder)

	again, err := EnsurePreferences(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs.ID, again.ID)

	var count int64
	db.Model(&models.NotificationPreference{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDispatchBothChannels(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	sent := captureMail(t)

	result := Dispatch(db, user.ID, Event{
		Type:    models.NotifyCompletion,
		Title:   "Course Completed",
		Message: "Well done!",
	})

	assert.True(t, result.InAppCreated)
	assert.NoError(t, result.InAppErr)
	assert.True(t, result.EmailSent)
	assert.NoError(t, result.EmailErr)

	require.Len(t, *sent, 1)
	assert.Equal(t, []string{"student@example.com"}, (*sent)[0].to)
	assert.Equal(t, "Course Completed", (*sent)[0].subject)

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDispatchRespectsChannelPreferences(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	sent := captureMail(t)

	// Opt out of completion emails only; in-app stays on
	prefs, err := EnsurePreferences(db, user.ID)
	require.NoError(t, err)
	prefs.EmailOnCompletion = false
	require.NoError(t, db.Save(prefs).Error)

	result := Dispatch(db, user.ID, Event{
		Type:    models.NotifyCompletion,
		Title:   "Course Completed",
		Message: "Well done!",
	})

	assert.True(t, result.InAppCreated)
	assert.False(t, result.EmailSent)
	assert.Empty(t, *sent)

	// Other event types are unaffected by the completion opt-out
	result = Dispatch(db, user.ID, Event{
		Type:    models.NotifyEnrollment,
		Title:   "Enrolled",
		Message: "Welcome aboard",
	})
	assert.True(t, result.InAppCreated)
	assert.True(t, result.EmailSent)
	require.Len(t, *sent, 1)
}

func TestDispatchBothChannelsOff(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	sent := captureMail(t)

	prefs, err := EnsurePreferences(db, user.ID)
	require.NoError(t, err)
	prefs.NotifyOnReminder = false
	prefs.EmailOnReminder = false
	require.NoError(t, db.Save(prefs).Error)

	result := Dispatch(db, user.ID, Event{
		Type:    models.NotifyReminder,
		Title:   "Keep going",
		Message: "You are nearly there",
	})

	assert.False(t, result.InAppCreated)
	assert.False(t, result.EmailSent)
	assert.Empty(t, *sent)

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDispatchEmailFailureIsContained(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")

	prev := SendMail
	SendMail = func(to []string, subject, body string) error {
		return fmt.Errorf("smtp down")
	}
	t.Cleanup(func() { SendMail = prev })

	// The transport error is reported in the result, and the in-app
	// notification still lands
	result := Dispatch(db, user.ID, Event{
		Type:    models.NotifyCertificate,
		Title:   "Certificate Issued",
		Message: "Congratulations",
	})

	assert.True(t, result.InAppCreated)
	assert.False(t, result.EmailSent)
	assert.EqualError(t, result.EmailErr, "smtp down")
}

func TestDispatchNilTransportSkipsEmail(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")

	prev := SendMail
	SendMail = nil
	t.Cleanup(func() { SendMail = prev })

	result := Dispatch(db, user.ID, Event{
		Type:    models.NotifySystem,
		Title:   "Welcome",
		Message: "Hello",
	})

	assert.True(t, result.InAppCreated)
	assert.False(t, result.EmailSent)
	assert.NoError(t, result.EmailErr)
}

func TestPreferenceUnknownPairsDefaultOn(t *testing.T) {
	prefs := models.NotificationPreference{}

	// Unknown event types and channels deliver by default
	assert.True(t, prefs.Enabled(models.NotifyAnnouncement, models.ChannelInApp))
	assert.True(t, prefs.Enabled(models.NotifySystem, models.ChannelEmail))
	assert.True(t, prefs.Enabled(models.NotifyEnrollment, "sms"))
}
