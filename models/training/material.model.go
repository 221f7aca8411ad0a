package training

import "gorm.io/gorm"

// Material types
const (
	MaterialDocument     = "document"
	MaterialVideo        = "video"
	MaterialPresentation = "presentation"
	MaterialQuiz         = "quiz"
	MaterialOther        = "other"
)

// TrainingMaterial is a course resource. Required materials drive the
// enrollment progress percentage.
type TrainingMaterial struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`
	MaterialType string `json:"material_type" gorm:"default:'document'"` // document, video, presentation, quiz, other
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size" gorm:"default:0"` // bytes
	UploadedBy   *uint  `json:"uploaded_by"`
	IsRequired   bool   `json:"is_required" gorm:"default:false"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

// MaterialCompletion records a completed material for an enrollment.
// One row per (enrollment, material); inserts are idempotent at the
// service layer.
type MaterialCompletion struct {
	gorm.Model
	EnrollmentID uint `json:"enrollment_id" gorm:"index;not null;uniqueIndex:idx_enrollment_material"`
	MaterialID   uint `json:"material_id" gorm:"index;not null;uniqueIndex:idx_enrollment_material"`
	IsDeleted    bool `json:"-" gorm:"default:false"`
}
