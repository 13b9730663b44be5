package models

import (
	"time"

	"gorm.io/gorm"
)

// Semester is the root of the course content tree
type Semester struct {
	gorm.Model
	Title       string     `json:"title"`
	Section     string     `json:"section"`
	Description string     `json:"description"`
	HasMidterm  bool       `json:"has_midterm"`
	HasFinal    bool       `json:"has_final"`
	StartDate   *time.Time `json:"start_date" gorm:"type:date"`
	EndDate     *time.Time `json:"end_date" gorm:"type:date"`
	IsActive    bool       `json:"is_active"`
}
