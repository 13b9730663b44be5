package models

import "gorm.io/gorm"

// Topic is a section within a course; order_index is its position in the course
type Topic struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
}
