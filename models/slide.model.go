package models

import "gorm.io/gorm"

// Slide is an embeddable document attached to a topic
type Slide struct {
	gorm.Model
	TopicID     uint   `json:"topic_id" gorm:"index;not null"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
}
