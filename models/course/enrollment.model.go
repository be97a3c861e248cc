package course

import (
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// Enrollment tracks a user's participation in a course. The
// (user_id, course_id) pair is unique at the database level so a
// racing duplicate enrollment fails at write time.
type Enrollment struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	EnrollmentDate    time.Time `json:"enrollment_date" gorm:"not null"`
	LastCompletedUnit int       `json:"last_completed_unit" gorm:"default:0"`
	Completed         bool      `json:"completed" gorm:"default:false"`

	User   *models.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course *Course      `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
