package training

import (
	"time"

	"gorm.io/gorm"
)

// TrainingSession is a scheduled session for a course
type TrainingSession struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	SessionName string    `json:"session_name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	StartTime   string    `json:"start_time"` // HH:MM
	EndTime     string    `json:"end_time"`   // HH:MM
	Location    string    `json:"location"`   // physical location or meeting link
	IsOnline    bool      `json:"is_online" gorm:"default:false"`
	Notes       string    `json:"notes" gorm:"type:text"`
	IsDeleted   bool      `json:"-" gorm:"default:false"`
}
