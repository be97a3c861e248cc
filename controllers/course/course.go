package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// withCourseAssociations preloads the author and the ordered unit list.
func withCourseAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Units", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index asc")
	})
}

// buildUnits converts the form payload to ordered units, skipping
// entries that are missing a title or content.
func buildUnits(courseID uint, payload []courseValidator.UnitPayload) []courseModels.CourseUnit {
	var units []courseModels.CourseUnit
	orderIndex := 0
	for _, u := range payload {
		if u.Title == "" || u.Content == "" {
			continue
		}
		units = append(units, courseModels.CourseUnit{
			CourseID:   courseID,
			Title:      u.Title,
			Content:    u.Content,
			OrderIndex: orderIndex,
		})
		orderIndex++
	}
	return units
}

// GetAllCourses lists every course with author and ordered units.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := withCourseAssociations(database.Database.Db).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// CreateCourse creates a course from a multipart form with a JSON units
// array and an optional PDF attachment.
func CreateCourse(c *fiber.Ctx) error {
	form, ok := c.Locals("validatedCourseForm").(*courseValidator.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var author models.User
	if err := db.First(&author, form.AuthorID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	course := courseModels.Course{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		AuthorID:    author.ID,
	}

	if form.PdfFile != nil {
		fileURL, err := utils.StorePdfFile(form.PdfFile)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store PDF file!", nil)
		}
		course.PdfFileName = form.PdfFile.Filename
		course.PdfFileURL = fileURL
	}

	course.Units = buildUnits(0, form.Units)

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	var created courseModels.Course
	if err := withCourseAssociations(db).First(&created, course.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", created)
}

// GetCourseByID returns a single course with its author and units.
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := withCourseAssociations(database.Database.Db).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// UpdateCourse updates course fields and replaces the unit list
// wholesale inside one transaction.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	form, ok := c.Locals("validatedCourseForm").(*courseValidator.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	pdfFileName := course.PdfFileName
	pdfFileURL := course.PdfFileURL
	if form.PdfFile != nil {
		fileURL, err := utils.StorePdfFile(form.PdfFile)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store PDF file!", nil)
		}
		pdfFileName = form.PdfFile.Filename
		pdfFileURL = fileURL
	} else if form.ReplacePdf {
		// replacePdf without a new file removes the existing attachment
		pdfFileName = ""
		pdfFileURL = ""
	}

	units := buildUnits(course.ID, form.Units)

	tx := db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	if err := tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"title":         form.Title,
		"description":   form.Description,
		"category":      form.Category,
		"pdf_file_name": pdfFileName,
		"pdf_file_url":  pdfFileURL,
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	// Wholesale unit replacement: hard-delete the old rows so the
	// (course_id, order_index) unique index accepts the new list.
	if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&courseModels.CourseUnit{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course units!", nil)
	}

	if len(units) > 0 {
		if err := tx.Create(&units).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course units!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	var updated courseModels.Course
	if err := withCourseAssociations(db).First(&updated, course.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", updated)
}

// DeleteCourse removes a course and its units. Only the author may
// delete a course.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A valid user ID is required!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.AuthorID != uint(userID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only the course author can delete this course", nil)
	}

	// Explicit cascade: dependent units go first, in the same transaction.
	tx := db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&courseModels.CourseUnit{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course units!", nil)
	}

	if err := tx.Unscoped().Delete(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", fiber.Map{
		"deleted": true,
	})
}

// GetCoursesByAuthor lists the courses created by one author.
func GetCoursesByAuthor(c *fiber.Ctx) error {
	authorID := c.Locals("authorID").(int)

	db := database.Database.Db

	var author models.User
	if err := db.First(&author, authorID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var courses []courseModels.Course
	if err := withCourseAssociations(db).Where("author_id = ?", author.ID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// SearchCourses matches course titles case-insensitively.
func SearchCourses(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search query is required!", nil)
	}

	var courses []courseModels.Course
	if err := withCourseAssociations(database.Database.Db).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseUnits lists a course's units ordered by position.
func GetCourseUnits(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var units []courseModels.CourseUnit
	if err := db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&units).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully!", units)
}

// GetCourseUnit returns the unit at a position within a course.
func GetCourseUnit(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	unitIndex := c.Locals("unitIndex").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var units []courseModels.CourseUnit
	if err := db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&units).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	if unitIndex >= len(units) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, fmt.Sprintf("Unit not found with index: %d", unitIndex), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit fetched successfully!", units[unitIndex])
}
