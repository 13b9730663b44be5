package models

import "gorm.io/gorm"

// StudyTool is a course-scoped auxiliary resource
type StudyTool struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Type        string `json:"type"`      // syllabus, previous_questions, exam_note, mark_distribution
	ContentURL  string `json:"content_url"`
	ExamType    string `json:"exam_type"` // midterm, final, both, none
	Description string `json:"description"`
}
