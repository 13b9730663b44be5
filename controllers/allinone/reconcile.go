package controllers

import (
	"clp/models"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SkipEntry records an entity that was dropped from the write set because required
// fields were missing. Lenient ingestion: the save still succeeds without it.
type SkipEntry struct {
	Level  string `json:"level"`
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ReconcileReport is returned to the caller alongside a successful save.
type ReconcileReport struct {
	SemesterID uint        `json:"semester_id"`
	Skipped    []SkipEntry `json:"skipped"`
}

func (r *ReconcileReport) skip(level string, index int, title, reason string) {
	r.Skipped = append(r.Skipped, SkipEntry{Level: level, Index: index, Title: title, Reason: reason})
}

// ReconcileSemesterTree makes the stored state of a semester match the submitted tree.
//
// Courses and topics are diffed by id: rows whose ids are absent from the submission are
// deleted, rows with ids are updated in place, rows without ids are inserted. Slides,
// videos and study tools are fully replaced on every save and never keep their ids.
// Topic, slide and video order_index always comes from the position in the submitted
// array, not from the client-sent value.
//
// The whole operation runs in one transaction, so a failure partway through leaves the
// previously stored tree untouched.
func ReconcileSemesterTree(db *gorm.DB, semesterID uint, tree *SemesterTree) (*ReconcileReport, error) {
	if strings.TrimSpace(tree.Semester.Title) == "" || strings.TrimSpace(tree.Semester.Section) == "" {
		return nil, fmt.Errorf("%w: semester title and section are required", ErrInvalidTree)
	}

	report := &ReconcileReport{SemesterID: semesterID, Skipped: []SkipEntry{}}

	err := db.Transaction(func(tx *gorm.DB) error {
		var semester models.Semester
		if err := tx.First(&semester, semesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSemesterNotFound
			}
			return err
		}

		semester.Title = strings.TrimSpace(tree.Semester.Title)
		semester.Section = strings.TrimSpace(tree.Semester.Section)
		semester.Description = tree.Semester.Description
		semester.HasMidterm = tree.Semester.HasMidterm
		semester.HasFinal = tree.Semester.HasFinal
		semester.StartDate = ParseDate(tree.Semester.StartDate)
		semester.EndDate = ParseDate(tree.Semester.EndDate)
		semester.IsActive = tree.Semester.IsActive

		if err := tx.Save(&semester).Error; err != nil {
			return err
		}

		return reconcileCourses(tx, semesterID, tree.Courses, report)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func reconcileCourses(tx *gorm.DB, semesterID uint, courses []CourseData, report *ReconcileReport) error {
	var existing []models.Course
	if err := tx.Where("semester_id = ?", semesterID).Find(&existing).Error; err != nil {
		return err
	}

	existingIDs := make(map[uint]bool, len(existing))
	for _, course := range existing {
		existingIDs[course.ID] = true
	}

	submitted := make(map[uint]bool, len(courses))
	for _, course := range courses {
		if course.ID != 0 {
			submitted[course.ID] = true
		}
	}

	// Courses the caller dropped from the tree go away, descendants included.
	var stale []uint
	for id := range existingIDs {
		if !submitted[id] {
			stale = append(stale, id)
		}
	}
	if err := deleteCourses(tx, stale); err != nil {
		return err
	}

	for i, course := range courses {
		if strings.TrimSpace(course.Title) == "" || strings.TrimSpace(course.CourseCode) == "" ||
			strings.TrimSpace(course.TeacherName) == "" {
			report.skip("course", i, course.Title, "title, course_code and teacher_name are required")
			continue
		}

		var courseID uint
		if course.ID != 0 && existingIDs[course.ID] {
			updates := map[string]interface{}{
				"title":          strings.TrimSpace(course.Title),
				"course_code":    strings.TrimSpace(course.CourseCode),
				"teacher_name":   strings.TrimSpace(course.TeacherName),
				"teacher_email":  course.TeacherEmail,
				"credits":        defaultCredits(course.Credits),
				"description":    course.Description,
				"is_highlighted": course.IsHighlighted,
			}
			// Scoped by semester_id so a stray id can never touch another semester's course.
			if err := tx.Model(&models.Course{}).
				Where("id = ? AND semester_id = ?", course.ID, semesterID).
				Updates(updates).Error; err != nil {
				return err
			}
			courseID = course.ID
		} else {
			row := models.Course{
				SemesterID:    semesterID,
				Title:         strings.TrimSpace(course.Title),
				CourseCode:    strings.TrimSpace(course.CourseCode),
				TeacherName:   strings.TrimSpace(course.TeacherName),
				TeacherEmail:  course.TeacherEmail,
				Credits:       defaultCredits(course.Credits),
				Description:   course.Description,
				IsHighlighted: course.IsHighlighted,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			courseID = row.ID
		}

		if err := reconcileTopics(tx, courseID, course.Topics, report); err != nil {
			return err
		}
		if err := replaceStudyTools(tx, courseID, course.StudyTools, report); err != nil {
			return err
		}
	}

	return nil
}

func reconcileTopics(tx *gorm.DB, courseID uint, topics []TopicData, report *ReconcileReport) error {
	var existing []models.Topic
	if err := tx.Where("course_id = ?", courseID).Find(&existing).Error; err != nil {
		return err
	}

	existingIDs := make(map[uint]bool, len(existing))
	for _, topic := range existing {
		existingIDs[topic.ID] = true
	}

	submitted := make(map[uint]bool, len(topics))
	for _, topic := range topics {
		if topic.ID != 0 {
			submitted[topic.ID] = true
		}
	}

	var stale []uint
	for id := range existingIDs {
		if !submitted[id] {
			stale = append(stale, id)
		}
	}
	if err := deleteTopics(tx, stale); err != nil {
		return err
	}

	for i, topic := range topics {
		if strings.TrimSpace(topic.Title) == "" {
			report.skip("topic", i, topic.Title, "title is required")
			continue
		}

		// The array position wins over whatever order_index the caller sent.
		var topicID uint
		if topic.ID != 0 && existingIDs[topic.ID] {
			updates := map[string]interface{}{
				"title":       strings.TrimSpace(topic.Title),
				"description": topic.Description,
				"order_index": i,
			}
			if err := tx.Model(&models.Topic{}).
				Where("id = ? AND course_id = ?", topic.ID, courseID).
				Updates(updates).Error; err != nil {
				return err
			}
			topicID = topic.ID
		} else {
			row := models.Topic{
				CourseID:    courseID,
				Title:       strings.TrimSpace(topic.Title),
				Description: topic.Description,
				OrderIndex:  i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			topicID = row.ID
		}

		if err := replaceSlides(tx, topicID, topic.Slides, report); err != nil {
			return err
		}
		if err := replaceVideos(tx, topicID, topic.Videos, report); err != nil {
			return err
		}
	}

	return nil
}

// replaceSlides drops every slide of the topic and reinserts the submitted set.
// Slide ids are never preserved.
func replaceSlides(tx *gorm.DB, topicID uint, slides []SlideData, report *ReconcileReport) error {
	if err := tx.Where("topic_id = ?", topicID).Delete(&models.Slide{}).Error; err != nil {
		return err
	}

	rows := make([]models.Slide, 0, len(slides))
	for i, slide := range slides {
		if strings.TrimSpace(slide.Title) == "" || strings.TrimSpace(slide.URL) == "" {
			report.skip("slide", i, slide.Title, "title and url are required")
			continue
		}
		rows = append(rows, models.Slide{
			TopicID:     topicID,
			Title:       strings.TrimSpace(slide.Title),
			URL:         strings.TrimSpace(slide.URL),
			Description: slide.Description,
			OrderIndex:  i,
		})
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// replaceVideos mirrors replaceSlides for the video table.
func replaceVideos(tx *gorm.DB, topicID uint, videos []VideoData, report *ReconcileReport) error {
	if err := tx.Where("topic_id = ?", topicID).Delete(&models.Video{}).Error; err != nil {
		return err
	}

	rows := make([]models.Video, 0, len(videos))
	for i, video := range videos {
		if strings.TrimSpace(video.Title) == "" || strings.TrimSpace(video.URL) == "" {
			report.skip("video", i, video.Title, "title and url are required")
			continue
		}
		rows = append(rows, models.Video{
			TopicID:     topicID,
			Title:       strings.TrimSpace(video.Title),
			URL:         strings.TrimSpace(video.URL),
			Description: video.Description,
			OrderIndex:  i,
		})
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// replaceStudyTools is the same full-replace policy at the course level. Submitted ids
// are ignored even when present.
func replaceStudyTools(tx *gorm.DB, courseID uint, tools []StudyToolData, report *ReconcileReport) error {
	if err := tx.Where("course_id = ?", courseID).Delete(&models.StudyTool{}).Error; err != nil {
		return err
	}

	rows := make([]models.StudyTool, 0, len(tools))
	for i, tool := range tools {
		if strings.TrimSpace(tool.Title) == "" || strings.TrimSpace(tool.Type) == "" ||
			strings.TrimSpace(tool.ExamType) == "" {
			report.skip("study_tool", i, tool.Title, "title, type and exam_type are required")
			continue
		}
		rows = append(rows, models.StudyTool{
			CourseID:    courseID,
			Title:       strings.TrimSpace(tool.Title),
			Type:        strings.TrimSpace(tool.Type),
			ContentURL:  tool.ContentURL,
			ExamType:    strings.TrimSpace(tool.ExamType),
			Description: tool.Description,
		})
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
