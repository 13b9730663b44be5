package models

import "gorm.io/gorm"

// ShareLink maps a short token to a deep-link target inside a course
type ShareLink struct {
	gorm.Model
	Token      string `json:"token" gorm:"uniqueIndex;not null"`
	TargetType string `json:"target_type"` // course, topic, slide, video
	TargetID   uint   `json:"target_id" gorm:"index;not null"`
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
}
