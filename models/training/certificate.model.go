package training

import (
	"time"

	"gorm.io/gorm"
)

// Certificate status
const (
	CertDraft   = "draft"
	CertIssued  = "issued"
	CertRevoked = "revoked"
)

// Certificate is the completion artifact for an enrollment. Created as a
// draft the moment the enrollment first reaches completed; only an admin
// approval moves it to issued.
type Certificate struct {
	gorm.Model
	EnrollmentID      uint       `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	CertificateNumber string     `json:"certificate_number" gorm:"unique;not null"`
	Status            string     `json:"status" gorm:"default:'draft'"` // draft, issued, revoked
	IssueDate         *time.Time `json:"issue_date"`
	ExpiryDate        *time.Time `json:"expiry_date"` // nil = no expiry
	CertificateURL    string     `json:"certificate_url"`
	IssuedBy          *uint      `json:"issued_by"`
	Notes             string     `json:"notes" gorm:"type:text"`
	IsDeleted         bool       `json:"-" gorm:"default:false"`

	Enrollment *Enrollment `json:"enrollment,omitempty" gorm:"foreignKey:EnrollmentID"`
}
