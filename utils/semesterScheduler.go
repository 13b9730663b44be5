package utils

import (
	"clp/database"
	"clp/models"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SEMESTER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ProcessSemesterWindows flips is_active on semesters whose date window opened or closed
func ProcessSemesterWindows(db *gorm.DB, now time.Time) error {
	// Activate: window has opened and not yet closed.
	res := db.Model(&models.Semester{}).
		Where("is_active = ? AND start_date IS NOT NULL AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
			false, now, now).
		Update("is_active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logScheduler("Activated " + strconv.FormatInt(res.RowsAffected, 10) + " semester(s)")
	}

	// Deactivate: window has closed.
	res = db.Model(&models.Semester{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logScheduler("Deactivated " + strconv.FormatInt(res.RowsAffected, 10) + " semester(s)")
	}

	return nil
}

// StartSemesterScheduler runs the window check hourly
func StartSemesterScheduler() {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		if err := ProcessSemesterWindows(database.Database.Db, time.Now()); err != nil {
			logScheduler("Error processing semester windows: " + err.Error())
		}
	})
	if err != nil {
		log.Printf("Failed to register semester scheduler: %v", err)
		return
	}

	c.Start()
	logScheduler("Semester scheduler started")
}
