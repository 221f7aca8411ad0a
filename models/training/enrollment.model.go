package training

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status
const (
	StatusPending    = "pending"
	StatusEnrolled   = "enrolled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusFailed     = "failed" // set only by direct admin edit
)

// ActiveStatuses are the states that count as a live enrollment for
// duplicate checks and capacity.
var ActiveStatuses = []string{StatusPending, StatusEnrolled, StatusInProgress}

// Enrollment links one user to one course and tracks progress
type Enrollment struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID           uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	SessionID          *uint      `json:"session_id" gorm:"index"`
	Status             string     `json:"status" gorm:"default:'enrolled'"`
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"` // 0-100
	Score              *float64   `json:"score"`                                // 0-100
	EnrolledDate       time.Time  `json:"enrolled_date" gorm:"autoCreateTime"`
	StartDate          *time.Time `json:"start_date"`
	CompletionDate     *time.Time `json:"completion_date"`
	Feedback           string     `json:"feedback" gorm:"type:text"`
	AssignedBy         *uint      `json:"assigned_by"`
	Notes              string     `json:"notes" gorm:"type:text"`
	IsDeleted          bool       `json:"-" gorm:"default:false"`

	Course *TrainingCourse `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// IsActive reports whether the enrollment occupies a seat
func (e *Enrollment) IsActive() bool {
	return e.Status == StatusPending || e.Status == StatusEnrolled || e.Status == StatusInProgress
}
