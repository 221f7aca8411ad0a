package services

import "errors"

// Business-rule violations surfaced to controllers. Controllers map these
// onto 4xx responses; anything else is treated as a server error.
var (
	ErrCourseNotActive    = errors.New("course is not active")
	ErrCourseFull         = errors.New("course has reached max participants")
	ErrAlreadyEnrolled    = errors.New("an active enrollment already exists for this course")
	ErrCertificateHeld    = errors.New("a draft or issued certificate exists for this course")
	ErrNotEnrolled        = errors.New("user is not enrolled in this course")
	ErrEnrollmentInactive = errors.New("enrollment is cancelled")
	ErrAlreadyCompleted   = errors.New("enrollment is already completed")
	ErrMaterialNotFound   = errors.New("material not found in this course")
	ErrQuizEmpty          = errors.New("quiz has no questions")
	ErrNotDraft           = errors.New("certificate is not in draft status")
	ErrNotOwner           = errors.New("enrollment belongs to another user")
)
