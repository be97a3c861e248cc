package course

import (
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// Certificate is the proof-of-completion record for an enrollment.
// Unique indexes on (user_id, course_id), enrollment_id and
// certificate_number guarantee at most one certificate per enrollment
// even under concurrent issuance.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	EnrollmentID      uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	IssueDate         time.Time `json:"issue_date" gorm:"not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"uniqueIndex;not null"`

	User   *models.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course *Course      `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
