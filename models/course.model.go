package models

import "gorm.io/gorm"

// Course belongs to exactly one semester
type Course struct {
	gorm.Model
	SemesterID    uint   `json:"semester_id" gorm:"index;not null"`
	Title         string `json:"title"`
	CourseCode    string `json:"course_code"`
	TeacherName   string `json:"teacher_name"`
	TeacherEmail  string `json:"teacher_email"`
	Credits       int    `json:"credits" gorm:"default:3"`
	Description   string `json:"description"`
	IsHighlighted bool   `json:"is_highlighted" gorm:"default:false"`
}
