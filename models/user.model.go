package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent  = "STUDENT"
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

type User struct {
	gorm.Model
	Name              string     `json:"name" gorm:"default:''"`
	Email             string     `json:"email" gorm:"unique;not null"`
	Password          string     `json:"-" gorm:"not null"`
	Role              string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, EMPLOYEE, ADMIN
	Program           string     `json:"program" gorm:"default:''"`     // degree program or area of expertise
	Department        string     `json:"department" gorm:"default:''"`
	Position          string     `json:"position" gorm:"default:''"`
	PhoneNumber       string     `json:"phone_number" gorm:"default:''"`
	ProfilePictureURL string     `json:"profile_picture_url" gorm:"default:''"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	IsEmailVerified   bool       `json:"is_email_verified" gorm:"default:false"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	LastLogin         *time.Time `json:"last_login"`
	IsDeleted         bool       `json:"-" gorm:"default:false"`
}
