package controllers

import (
	"fmt"
	"testing"

	"clp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Semester{},
		&models.Course{},
		&models.Topic{},
		&models.Slide{},
		&models.Video{},
		&models.StudyTool{},
		&models.ShareLink{},
	))
	return db
}

func createSemester(t *testing.T, db *gorm.DB, title, section string) models.Semester {
	semester := models.Semester{Title: title, Section: section, IsActive: true}
	require.NoError(t, db.Create(&semester).Error)
	return semester
}

func baseTree(title, section string) *SemesterTree {
	return &SemesterTree{
		Semester: SemesterData{Title: title, Section: section, IsActive: true},
		Courses:  []CourseData{},
	}
}

func TestReconcileCreatesFullTree(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Fall 2026", "A")

	tree := baseTree("Fall 2026", "A")
	tree.Courses = []CourseData{
		{
			Title:       "Algorithms",
			CourseCode:  "CSE221",
			TeacherName: "Dr. Rahman",
			Credits:     3,
			Topics: []TopicData{
				{
					Title: "Sorting",
					Slides: []SlideData{
						{Title: "Merge Sort", URL: "https://drive.example.com/merge"},
						{Title: "Quick Sort", URL: "https://drive.example.com/quick"},
					},
					Videos: []VideoData{
						{Title: "Sorting Lecture", URL: "https://youtu.be/abc"},
					},
				},
				{Title: "Graphs", Slides: []SlideData{}, Videos: []VideoData{}},
			},
			StudyTools: []StudyToolData{
				{Title: "Syllabus", Type: "syllabus", ExamType: "none"},
			},
		},
	}

	report, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.NoError(t, err)
	assert.Equal(t, semester.ID, report.SemesterID)
	assert.Empty(t, report.Skipped)

	var courses []models.Course
	require.NoError(t, db.Where("semester_id = ?", semester.ID).Find(&courses).Error)
	require.Len(t, courses, 1)
	assert.Equal(t, "CSE221", courses[0].CourseCode)

	var topics []models.Topic
	require.NoError(t, db.Where("course_id = ?", courses[0].ID).Order("order_index").Find(&topics).Error)
	require.Len(t, topics, 2)
	assert.Equal(t, 0, topics[0].OrderIndex)
	assert.Equal(t, 1, topics[1].OrderIndex)
	assert.Equal(t, "Sorting", topics[0].Title)

	var slides []models.Slide
	require.NoError(t, db.Where("topic_id = ?", topics[0].ID).Order("order_index").Find(&slides).Error)
	require.Len(t, slides, 2)
	assert.Equal(t, "Merge Sort", slides[0].Title)
	assert.Equal(t, 1, slides[1].OrderIndex)

	var videoCount int64
	require.NoError(t, db.Model(&models.Video{}).Where("topic_id = ?", topics[0].ID).Count(&videoCount).Error)
	assert.Equal(t, int64(1), videoCount)

	var tools []models.StudyTool
	require.NoError(t, db.Where("course_id = ?", courses[0].ID).Find(&tools).Error)
	require.Len(t, tools, 1)
	assert.Equal(t, "syllabus", tools[0].Type)
}

func TestReconcileIdempotent(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Spring 2026", "B")

	tree := baseTree("Spring 2026", "B")
	tree.Courses = []CourseData{
		{
			Title:       "Databases",
			CourseCode:  "CSE311",
			TeacherName: "Dr. Karim",
			Topics: []TopicData{
				{
					Title:  "Normalization",
					Slides: []SlideData{{Title: "3NF", URL: "https://drive.example.com/3nf"}},
					Videos: []VideoData{},
				},
			},
			StudyTools: []StudyToolData{
				{Title: "Midterm Notes", Type: "exam_note", ExamType: "midterm"},
			},
		},
	}

	_, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.NoError(t, err)

	first, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)

	// Resubmit exactly what was read back.
	_, err = ReconcileSemesterTree(db, semester.ID, first)
	require.NoError(t, err)

	second, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)

	require.Len(t, second.Courses, 1)
	require.Len(t, second.Courses[0].Topics, 1)
	require.Len(t, second.Courses[0].Topics[0].Slides, 1)
	require.Len(t, second.Courses[0].StudyTools, 1)

	// Course and topic ids survive a repeated save.
	assert.Equal(t, first.Courses[0].ID, second.Courses[0].ID)
	assert.Equal(t, first.Courses[0].Topics[0].ID, second.Courses[0].Topics[0].ID)

	// Slides and study tools are fully replaced: same content, fresh rows.
	assert.Equal(t, first.Courses[0].Topics[0].Slides[0].Title, second.Courses[0].Topics[0].Slides[0].Title)
	assert.Equal(t, first.Courses[0].Topics[0].Slides[0].URL, second.Courses[0].Topics[0].Slides[0].URL)
	assert.NotEqual(t, first.Courses[0].Topics[0].Slides[0].ID, second.Courses[0].Topics[0].Slides[0].ID)
	assert.NotEqual(t, first.Courses[0].StudyTools[0].ID, second.Courses[0].StudyTools[0].ID)
}

func TestReconcileDeletesStaleCourses(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Fall 2026", "C")

	tree := baseTree("Fall 2026", "C")
	tree.Courses = []CourseData{
		{Title: "Kept", CourseCode: "CSE101", TeacherName: "X", Topics: []TopicData{}, StudyTools: []StudyToolData{}},
		{
			Title: "Dropped", CourseCode: "CSE102", TeacherName: "Y",
			Topics: []TopicData{
				{Title: "T", Slides: []SlideData{{Title: "S", URL: "http://x"}}, Videos: []VideoData{}},
			},
			StudyTools: []StudyToolData{{Title: "Q", Type: "previous_questions", ExamType: "final"}},
		},
	}
	_, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.NoError(t, err)

	read, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)
	require.Len(t, read.Courses, 2)

	var droppedID uint
	for _, course := range read.Courses {
		if course.Title == "Dropped" {
			droppedID = course.ID
		}
	}
	require.NotZero(t, droppedID)

	// Resubmit with only the kept course.
	next := baseTree("Fall 2026", "C")
	for _, course := range read.Courses {
		if course.Title == "Kept" {
			next.Courses = append(next.Courses, course)
		}
	}
	_, err = ReconcileSemesterTree(db, semester.ID, next)
	require.NoError(t, err)

	after, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)
	require.Len(t, after.Courses, 1)
	assert.Equal(t, "Kept", after.Courses[0].Title)

	// Descendants of the dropped course are gone too.
	var topicCount, toolCount int64
	require.NoError(t, db.Model(&models.Topic{}).Where("course_id = ?", droppedID).Count(&topicCount).Error)
	require.NoError(t, db.Model(&models.StudyTool{}).Where("course_id = ?", droppedID).Count(&toolCount).Error)
	assert.Zero(t, topicCount)
	assert.Zero(t, toolCount)
}

func TestReconcileSkipsInvalidCourse(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Fall 2026", "D")

	tree := baseTree("Fall 2026", "D")
	tree.Courses = []CourseData{
		{Title: "No Code", TeacherName: "X", Topics: []TopicData{}, StudyTools: []StudyToolData{}},
		{Title: "Valid", CourseCode: "CSE103", TeacherName: "Y", Topics: []TopicData{}, StudyTools: []StudyToolData{}},
	}

	report, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.NoError(t, err)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "course", report.Skipped[0].Level)
	assert.Equal(t, 0, report.Skipped[0].Index)
	assert.Equal(t, "No Code", report.Skipped[0].Title)

	var courses []models.Course
	require.NoError(t, db.Where("semester_id = ?", semester.ID).Find(&courses).Error)
	require.Len(t, courses, 1)
	assert.Equal(t, "Valid", courses[0].Title)
}

func TestReconcileFailFastValidation(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Original", "E")

	tree := baseTree("", "E")
	tree.Courses = []CourseData{
		{Title: "Should Not Exist", CourseCode: "CSE104", TeacherName: "Z"},
	}

	_, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.ErrorIs(t, err, ErrInvalidTree)

	// Zero mutations: semester untouched, nothing inserted.
	var reloaded models.Semester
	require.NoError(t, db.First(&reloaded, semester.ID).Error)
	assert.Equal(t, "Original", reloaded.Title)

	var courseCount int64
	require.NoError(t, db.Model(&models.Course{}).Count(&courseCount).Error)
	assert.Zero(t, courseCount)
}

func TestReconcileSemesterNotFound(t *testing.T) {
	db := setupDB(t)

	_, err := ReconcileSemesterTree(db, 9999, baseTree("Ghost", "Z"))
	require.ErrorIs(t, err, ErrSemesterNotFound)
}

func TestReconcileOverridesTopicOrder(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Fall 2026", "F")

	tree := baseTree("Fall 2026", "F")
	tree.Courses = []CourseData{
		{
			Title: "OS", CourseCode: "CSE321", TeacherName: "X",
			Topics: []TopicData{
				{Title: "First", OrderIndex: 7, Slides: []SlideData{}, Videos: []VideoData{}},
				{Title: "Second", OrderIndex: 2, Slides: []SlideData{}, Videos: []VideoData{}},
			},
			StudyTools: []StudyToolData{},
		},
	}
	_, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.NoError(t, err)

	read, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)
	require.Len(t, read.Courses, 1)
	require.Len(t, read.Courses[0].Topics, 2)

	// Client-sent order_index is ignored; the array position wins.
	assert.Equal(t, "First", read.Courses[0].Topics[0].Title)
	assert.Equal(t, 0, read.Courses[0].Topics[0].OrderIndex)
	assert.Equal(t, "Second", read.Courses[0].Topics[1].Title)
	assert.Equal(t, 1, read.Courses[0].Topics[1].OrderIndex)
}

// The concrete editor scenario: update a course in place, replace its topic (no id
// submitted), keep one slide, drop all videos and study tools.
func TestReconcileEditorScenario(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Fall 2026", "G")

	seed := baseTree("Fall 2026", "G")
	seed.Courses = []CourseData{
		{
			Title: "Networks", CourseCode: "CSE401", TeacherName: "X",
			Topics: []TopicData{
				{
					Title:  "T1",
					Slides: []SlideData{{Title: "old slide", URL: "http://old"}},
					Videos: []VideoData{{Title: "old video", URL: "http://old-video"}},
				},
			},
			StudyTools: []StudyToolData{{Title: "Old Tool", Type: "syllabus", ExamType: "none"}},
		},
	}
	_, err := ReconcileSemesterTree(db, semester.ID, seed)
	require.NoError(t, err)

	before, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)
	courseID := before.Courses[0].ID
	oldTopicID := before.Courses[0].Topics[0].ID

	next := baseTree("Fall 2026", "G")
	next.Courses = []CourseData{
		{
			ID: courseID, Title: "Updated", CourseCode: "CSE101", TeacherName: "X",
			Topics: []TopicData{
				{
					Title:  "T1new",
					Slides: []SlideData{{Title: "s1", URL: "http://x"}},
					Videos: []VideoData{},
				},
			},
			StudyTools: []StudyToolData{},
		},
	}
	_, err = ReconcileSemesterTree(db, semester.ID, next)
	require.NoError(t, err)

	after, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)
	require.Len(t, after.Courses, 1)

	// Same course row, updated in place.
	assert.Equal(t, courseID, after.Courses[0].ID)
	assert.Equal(t, "Updated", after.Courses[0].Title)

	// No topic id was submitted, so the old topic row was replaced.
	require.Len(t, after.Courses[0].Topics, 1)
	assert.NotEqual(t, oldTopicID, after.Courses[0].Topics[0].ID)
	assert.Equal(t, "T1new", after.Courses[0].Topics[0].Title)

	require.Len(t, after.Courses[0].Topics[0].Slides, 1)
	assert.Equal(t, "s1", after.Courses[0].Topics[0].Slides[0].Title)
	assert.Empty(t, after.Courses[0].Topics[0].Videos)
	assert.Empty(t, after.Courses[0].StudyTools)

	var staleTopicCount int64
	require.NoError(t, db.Model(&models.Topic{}).Where("id = ?", oldTopicID).Count(&staleTopicCount).Error)
	assert.Zero(t, staleTopicCount)
}

func TestReconcileDropsInvalidLeaves(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Fall 2026", "H")

	tree := baseTree("Fall 2026", "H")
	tree.Courses = []CourseData{
		{
			Title: "AI", CourseCode: "CSE404", TeacherName: "X",
			Topics: []TopicData{
				{
					Title: "Search",
					Slides: []SlideData{
						{Title: "", URL: "http://no-title"},
						{Title: "Kept", URL: "http://kept"},
					},
					Videos: []VideoData{{Title: "No URL", URL: ""}},
				},
			},
			StudyTools: []StudyToolData{
				{Title: "No Exam Type", Type: "exam_note", ExamType: ""},
			},
		},
	}

	report, err := ReconcileSemesterTree(db, semester.ID, tree)
	require.NoError(t, err)
	assert.Len(t, report.Skipped, 3)

	read, err := ReadAggregate(db, semester.ID)
	require.NoError(t, err)
	require.Len(t, read.Courses[0].Topics, 1)
	require.Len(t, read.Courses[0].Topics[0].Slides, 1)
	assert.Equal(t, "Kept", read.Courses[0].Topics[0].Slides[0].Title)
	assert.Empty(t, read.Courses[0].Topics[0].Videos)
	assert.Empty(t, read.Courses[0].StudyTools)
}

func TestReconcileRollsBackOnFailure(t *testing.T) {
	db := setupDB(t)
	semester := createSemester(t, db, "Original", "I")

	seed := baseTree("Original", "I")
	seed.Courses = []CourseData{
		{Title: "Before", CourseCode: "CSE100", TeacherName: "X", Topics: []TopicData{}, StudyTools: []StudyToolData{}},
	}
	_, err := ReconcileSemesterTree(db, semester.ID, seed)
	require.NoError(t, err)

	// Force the video insert to fail partway through the save.
	require.NoError(t, db.Migrator().DropTable(&models.Video{}))

	next := baseTree("Renamed", "I")
	next.Courses = []CourseData{
		{
			Title: "After", CourseCode: "CSE200", TeacherName: "Y",
			Topics: []TopicData{
				{
					Title:  "T",
					Slides: []SlideData{},
					Videos: []VideoData{{Title: "V", URL: "http://v"}},
				},
			},
			StudyTools: []StudyToolData{},
		},
	}
	_, err = ReconcileSemesterTree(db, semester.ID, next)
	require.Error(t, err)

	// Everything rolled back to the fully-old state.
	var reloaded models.Semester
	require.NoError(t, db.First(&reloaded, semester.ID).Error)
	assert.Equal(t, "Original", reloaded.Title)

	var courses []models.Course
	require.NoError(t, db.Where("semester_id = ?", semester.ID).Find(&courses).Error)
	require.Len(t, courses, 1)
	assert.Equal(t, "Before", courses[0].Title)
}
