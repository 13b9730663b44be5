package controllers

import (
	"clp/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSemesterNotFound = errors.New("semester not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrInvalidTree      = errors.New("invalid semester tree")
)

// SemesterTree is the full nested payload the all-in-one editor submits and reads back.
// The same shape is used in both directions so an edit-then-resubmit round-trip works.
type SemesterTree struct {
	Semester SemesterData `json:"semester"`
	Courses  []CourseData `json:"courses"`
}

type SemesterData struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"title"`
	Section     string `json:"section"`
	Description string `json:"description"`
	HasMidterm  bool   `json:"has_midterm"`
	HasFinal    bool   `json:"has_final"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsActive    bool   `json:"is_active"`
}

type CourseData struct {
	ID            uint            `json:"id,omitempty"`
	Title         string          `json:"title"`
	CourseCode    string          `json:"course_code"`
	TeacherName   string          `json:"teacher_name"`
	TeacherEmail  string          `json:"teacher_email"`
	Credits       int             `json:"credits"`
	Description   string          `json:"description"`
	IsHighlighted bool            `json:"is_highlighted"`
	Topics        []TopicData     `json:"topics"`
	StudyTools    []StudyToolData `json:"studyTools"`
}

type TopicData struct {
	ID          uint        `json:"id,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	OrderIndex  int         `json:"order_index"`
	Slides      []SlideData `json:"slides"`
	Videos      []VideoData `json:"videos"`
}

type SlideData struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

type VideoData struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

type StudyToolData struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	ContentURL  string `json:"content_url"`
	ExamType    string `json:"exam_type"`
	Description string `json:"description"`
}

const dateLayout = "2006-01-02"

func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateLayout)
}

func defaultCredits(credits int) int {
	if credits <= 0 {
		return 3
	}
	return credits
}

// ReadAggregate assembles the full semester tree. Every optional field reads back as a
// type-appropriate zero value, never null; topics, slides and videos come out ordered.
func ReadAggregate(db *gorm.DB, semesterID uint) (*SemesterTree, error) {
	var semester models.Semester
	if err := db.First(&semester, semesterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}

	tree := &SemesterTree{
		Semester: SemesterData{
			ID:          semester.ID,
			Title:       semester.Title,
			Section:     semester.Section,
			Description: semester.Description,
			HasMidterm:  semester.HasMidterm,
			HasFinal:    semester.HasFinal,
			StartDate:   formatDate(semester.StartDate),
			EndDate:     formatDate(semester.EndDate),
			IsActive:    semester.IsActive,
		},
		Courses: []CourseData{},
	}

	var courses []models.Course
	if err := db.Where("semester_id = ?", semesterID).Order("id").Find(&courses).Error; err != nil {
		return nil, err
	}

	for _, course := range courses {
		data, err := buildCourseData(db, course)
		if err != nil {
			return nil, err
		}
		tree.Courses = append(tree.Courses, data)
	}

	return tree, nil
}

// ReadCourseTree returns one course with its topics, slides, videos and study tools.
func ReadCourseTree(db *gorm.DB, courseID uint) (*CourseData, error) {
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	data, err := buildCourseData(db, course)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func buildCourseData(db *gorm.DB, course models.Course) (CourseData, error) {
	data := CourseData{
		ID:            course.ID,
		Title:         course.Title,
		CourseCode:    course.CourseCode,
		TeacherName:   course.TeacherName,
		TeacherEmail:  course.TeacherEmail,
		Credits:       defaultCredits(course.Credits),
		Description:   course.Description,
		IsHighlighted: course.IsHighlighted,
		Topics:        []TopicData{},
		StudyTools:    []StudyToolData{},
	}

	var topics []models.Topic
	if err := db.Where("course_id = ?", course.ID).Order("order_index").Find(&topics).Error; err != nil {
		return data, err
	}

	for _, topic := range topics {
		topicData := TopicData{
			ID:          topic.ID,
			Title:       topic.Title,
			Description: topic.Description,
			OrderIndex:  topic.OrderIndex,
			Slides:      []SlideData{},
			Videos:      []VideoData{},
		}

		var slides []models.Slide
		if err := db.Where("topic_id = ?", topic.ID).Order("order_index").Find(&slides).Error; err != nil {
			return data, err
		}
		for _, slide := range slides {
			topicData.Slides = append(topicData.Slides, SlideData{
				ID:          slide.ID,
				Title:       slide.Title,
				URL:         slide.URL,
				Description: slide.Description,
				OrderIndex:  slide.OrderIndex,
			})
		}

		var videos []models.Video
		if err := db.Where("topic_id = ?", topic.ID).Order("order_index").Find(&videos).Error; err != nil {
			return data, err
		}
		for _, video := range videos {
			topicData.Videos = append(topicData.Videos, VideoData{
				ID:          video.ID,
				Title:       video.Title,
				URL:         video.URL,
				Description: video.Description,
				OrderIndex:  video.OrderIndex,
			})
		}

		data.Topics = append(data.Topics, topicData)
	}

	var tools []models.StudyTool
	if err := db.Where("course_id = ?", course.ID).Order("id").Find(&tools).Error; err != nil {
		return data, err
	}
	for _, tool := range tools {
		data.StudyTools = append(data.StudyTools, StudyToolData{
			ID:          tool.ID,
			Title:       tool.Title,
			Type:        tool.Type,
			ContentURL:  tool.ContentURL,
			ExamType:    tool.ExamType,
			Description: tool.Description,
		})
	}

	return data, nil
}

// DeleteSemesterTree removes a semester and all of its descendants. Deletes are soft, so
// the cascade is done in application code instead of leaning on the schema.
func DeleteSemesterTree(db *gorm.DB, semesterID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var semester models.Semester
		if err := tx.First(&semester, semesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSemesterNotFound
			}
			return err
		}

		var courseIDs []uint
		if err := tx.Model(&models.Course{}).Where("semester_id = ?", semesterID).Pluck("id", &courseIDs).Error; err != nil {
			return err
		}
		if err := deleteCourses(tx, courseIDs); err != nil {
			return err
		}

		return tx.Delete(&semester).Error
	})
}

func deleteCourses(tx *gorm.DB, courseIDs []uint) error {
	if len(courseIDs) == 0 {
		return nil
	}

	var topicIDs []uint
	if err := tx.Model(&models.Topic{}).Where("course_id IN ?", courseIDs).Pluck("id", &topicIDs).Error; err != nil {
		return err
	}
	if err := deleteTopicChildren(tx, topicIDs); err != nil {
		return err
	}
	if err := tx.Where("course_id IN ?", courseIDs).Delete(&models.Topic{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id IN ?", courseIDs).Delete(&models.StudyTool{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", courseIDs).Delete(&models.Course{}).Error
}

func deleteTopics(tx *gorm.DB, topicIDs []uint) error {
	if len(topicIDs) == 0 {
		return nil
	}
	if err := deleteTopicChildren(tx, topicIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error
}

func deleteTopicChildren(tx *gorm.DB, topicIDs []uint) error {
	if len(topicIDs) == 0 {
		return nil
	}
	if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.Slide{}).Error; err != nil {
		return err
	}
	return tx.Where("topic_id IN ?", topicIDs).Delete(&models.Video{}).Error
}
