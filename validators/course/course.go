package courseValidator

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// UnitPayload is one {title, content} entry of the units form field.
type UnitPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CourseForm carries the parsed multipart payload of course create/update.
type CourseForm struct {
	Title             string
	Description       string
	Category          string
	AuthorID          uint
	RequestedByUserID uint
	ReplacePdf        bool
	Units             []UnitPayload
	PdfFile           *multipart.FileHeader
}

// parseCourseForm reads the shared multipart fields of create and update.
func parseCourseForm(c *fiber.Ctx) (*CourseForm, map[string]string) {
	form := &CourseForm{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    strings.TrimSpace(c.FormValue("category")),
	}

	errors := make(map[string]string)

	if form.Title == "" {
		errors["title"] = "Title is required!"
	}
	if form.Description == "" {
		errors["description"] = "Description is required!"
	}

	unitsJSON := c.FormValue("units")
	if unitsJSON == "" {
		errors["units"] = "Units are required!"
	} else if err := json.Unmarshal([]byte(unitsJSON), &form.Units); err != nil {
		errors["units"] = "Units must be a JSON array of {title, content} objects!"
	}

	// The file part is optional
	if file, err := c.FormFile("pdfFile"); err == nil && file != nil && file.Size > 0 {
		form.PdfFile = file
	}

	return form, errors
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, errors := parseCourseForm(c)

		authorID, err := strconv.Atoi(c.FormValue("authorId"))
		if err != nil || authorID <= 0 {
			errors["authorId"] = "A valid author ID is required!"
		} else {
			form.AuthorID = uint(authorID)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseForm", form)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, errors := parseCourseForm(c)

		if v := c.FormValue("requestedByUserId"); v != "" {
			if id, err := strconv.Atoi(v); err == nil && id > 0 {
				form.RequestedByUserID = uint(id)
			} else {
				errors["requestedByUserId"] = "Invalid user ID!"
			}
		}

		form.ReplacePdf = c.FormValue("replacePdf") == "true"

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseForm", form)
		return c.Next()
	}
}

// CourseID validates the :id path parameter.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// AuthorID validates the :authorId path parameter.
func AuthorID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, err := strconv.Atoi(strings.TrimSpace(c.Params("authorId")))
		if err != nil || authorID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid author ID!", nil)
		}

		c.Locals("authorID", authorID)
		return c.Next()
	}
}

// UnitIndex validates the :index path parameter.
func UnitIndex() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitIndex, err := strconv.Atoi(strings.TrimSpace(c.Params("index")))
		if err != nil || unitIndex < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit index!", nil)
		}

		c.Locals("unitIndex", unitIndex)
		return c.Next()
	}
}
