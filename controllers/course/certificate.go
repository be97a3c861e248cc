package controllers

import (
	"errors"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// withCertificateAssociations preloads the certificate's user and course.
func withCertificateAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Course")
}

// GenerateCertificate issues a certificate for a completed enrollment.
// Unique indexes on (user_id, course_id) and enrollment_id make a racing
// duplicate insert fail at write time; that failure maps to the same
// bad-request error as the pre-check.
func GenerateCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCertificate").(*courseValidator.EnrollmentRequest)
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

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found for this user and course", nil)
	}

	if !enrollment.Completed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have not completed this course yet", nil)
	}

	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate already exists for this course", nil)
	}

	certificate := courseModels.Certificate{
		UserID:            user.ID,
		CourseID:          course.ID,
		EnrollmentID:      enrollment.ID,
		IssueDate:         time.Now(),
		CertificateNumber: uuid.NewString(),
	}

	if err := db.Create(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate already exists for this course", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	var created courseModels.Certificate
	if err := withCertificateAssociations(db).First(&created, certificate.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate!", nil)
	}

	utils.SendCertificateEmail(user.Email, user.Name, course.Title, created.CertificateNumber)
	go utils.NotifyCertificateIssued(created)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", created)
}

// GetUserCertificates lists all certificates of a user.
func GetUserCertificates(c *fiber.Ctx) error {
	userID := c.Locals("pathUserID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var certificates []courseModels.Certificate
	if err := withCertificateAssociations(db).
		Where("user_id = ?", user.ID).
		Order("issue_date desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}

// GetCertificate returns one certificate by id.
func GetCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(int)

	var certificate courseModels.Certificate
	if err := withCertificateAssociations(database.Database.Db).First(&certificate, certificateID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", certificate)
}

// VerifyCertificate looks a certificate up by its number. The number
// acts as a bearer capability token, so no auth gate exists here.
func VerifyCertificate(c *fiber.Ctx) error {
	number := c.Locals("certificateNumber").(string)

	var certificate courseModels.Certificate
	if err := withCertificateAssociations(database.Database.Db).
		Where("certificate_number = ?", number).
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found with number: "+number, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", certificate)
}
