package training

import "gorm.io/gorm"

// Course status
const (
	CourseActive   = "active"
	CourseInactive = "inactive"
	CourseArchived = "archived"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// TrainingCourse is a course available in the catalog
type TrainingCourse struct {
	gorm.Model
	Title            string  `json:"title" gorm:"not null"`
	Description      string  `json:"description" gorm:"type:text"`
	CategoryID       *uint   `json:"category_id" gorm:"index"`
	Instructor       string  `json:"instructor"`
	DurationHours    float64 `json:"duration_hours" gorm:"default:0"`
	Level            string  `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	MaxParticipants  int     `json:"max_participants" gorm:"default:30"`
	Prerequisites    string  `json:"prerequisites" gorm:"type:text"`
	LearningOutcomes string  `json:"learning_outcomes" gorm:"type:text"`
	Status           string  `json:"status" gorm:"default:'active'"` // active, inactive, archived
	ThumbnailURL     string  `json:"thumbnail_url"`
	CreatedBy        *uint   `json:"created_by"`
	IsDeleted        bool    `json:"-" gorm:"default:false"`
}

// EnrolledCount counts currently active enrollments for the course.
// Capacity is checked against this at enroll time only (soft constraint).
func (c *TrainingCourse) EnrolledCount(db *gorm.DB) int64 {
	var count int64
	db.Model(&Enrollment{}).
		Where("course_id = ? AND status IN ? AND is_deleted = ?", c.ID, []string{StatusEnrolled, StatusInProgress}, false).
		Count(&count)
	return count
}

// IsFull reports whether the course reached max capacity
func (c *TrainingCourse) IsFull(db *gorm.DB) bool {
	return c.EnrolledCount(db) >= int64(c.MaxParticipants)
}
