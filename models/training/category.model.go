package training

import "gorm.io/gorm"

// TrainingCategory groups courses in the catalog
type TrainingCategory struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"default:'fa-book'"` // FontAwesome icon class
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
