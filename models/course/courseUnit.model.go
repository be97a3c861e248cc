package course

import "gorm.io/gorm"

// CourseUnit is one ordered block of course content. OrderIndex is
// contiguous from 0 and unique within a course.
type CourseUnit struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"uniqueIndex:idx_unit_course_order;not null"`
	Title      string `json:"title" gorm:"not null"`
	Content    string `json:"content" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"uniqueIndex:idx_unit_course_order;default:0"`
}
