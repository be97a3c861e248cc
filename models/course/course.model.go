package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// Course represents authored learning content with ordered units
// and an optional PDF attachment.
type Course struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Category    string `json:"category"`
	PdfFileName string `json:"pdf_file_name"`
	PdfFileURL  string `json:"pdf_file_url"`
	AuthorID    uint   `json:"author_id" gorm:"index;not null"`

	Author *models.User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Units  []CourseUnit `json:"units,omitempty" gorm:"foreignKey:CourseID"`
}
