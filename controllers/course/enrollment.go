package controllers

import (
	"errors"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// progressUpdateRetries bounds the compare-and-set loop of UpdateProgress.
const progressUpdateRetries = 3

// withEnrollmentAssociations preloads the enrollment's user and course.
func withEnrollmentAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Course")
}

// EnrollInCourse enrolls a user in a course. The (user, course) pair is
// also guarded by a unique index, so a racing duplicate fails at write
// time and maps to the same bad-request error.
func EnrollInCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollment").(*courseValidator.EnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:            user.ID,
		CourseID:          course.ID,
		EnrollmentDate:    time.Now(),
		LastCompletedUnit: 0,
		Completed:         false,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	var created courseModels.Enrollment
	if err := withEnrollmentAssociations(db).First(&created, enrollment.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", created)
}

// GetUserEnrollments lists all enrollments for a user.
func GetUserEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("pathUserID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := withEnrollmentAssociations(db).Where("user_id = ?", user.ID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetCompletedEnrollments lists only the completed enrollments of a user.
func GetCompletedEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("pathUserID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := withEnrollmentAssociations(db).
		Where("user_id = ? AND completed = ?", user.ID, true).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetEnrollment returns one enrollment with nested user and course.
func GetEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := withEnrollmentAssociations(database.Database.Db).First(&enrollment, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// UpdateProgress advances an enrollment to the highest completed unit
// index. Progress never regresses, and the enrollment flips to
// completed once the last unit index is reached. The write is a
// compare-and-set guarded on the previously read progress so two racing
// updates cannot lose one another.
func UpdateProgress(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	reqData, ok := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	unitIndex := *reqData.UnitIndex

	db := database.Database.Db

	for attempt := 0; attempt < progressUpdateRetries; attempt++ {
		var enrollment courseModels.Enrollment
		if err := db.First(&enrollment, enrollmentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}

		var totalUnits int64
		if err := db.Model(&courseModels.CourseUnit{}).
			Where("course_id = ?", enrollment.CourseID).
			Count(&totalUnits).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}

		lastCompleted := enrollment.LastCompletedUnit
		if unitIndex > lastCompleted {
			lastCompleted = unitIndex
		}
		// Completion is sticky: once earned it survives later unit
		// additions to the course.
		completed := enrollment.Completed || int64(lastCompleted) >= totalUnits-1

		result := db.Model(&courseModels.Enrollment{}).
			Where("id = ? AND last_completed_unit = ?", enrollment.ID, enrollment.LastCompletedUnit).
			Updates(map[string]interface{}{
				"last_completed_unit": lastCompleted,
				"completed":           completed,
			})
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		if result.RowsAffected == 0 {
			// Lost the race against a concurrent update, re-read and retry.
			continue
		}

		var updated courseModels.Enrollment
		if err := withEnrollmentAssociations(db).First(&updated, enrollment.ID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", updated)
	}

	return middleware.JsonResponse(c, fiber.StatusConflict, false, "Progress update conflicted, please retry!", nil)
}

// GetEnrollmentStats returns total/completed/in-progress counts for a user.
func GetEnrollmentStats(c *fiber.Ctx) error {
	userID := c.Locals("pathUserID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var total int64
	if err := db.Model(&courseModels.Enrollment{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	var completed int64
	if err := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND completed = ?", user.ID, true).
		Count(&completed).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total":      total,
		"completed":  completed,
		"inProgress": total - completed,
	})
}
