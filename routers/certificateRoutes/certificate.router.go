package certificateRoutes

import (
	controllers "lms/controllers/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate issuance and verification.
// /user and /verify are registered before /:id so they match first.
func SetupCertificateRoutes(app *fiber.App) {
	certificateGroup := app.Group("/api/certificates")

	certificateGroup.Post("/", validators.CreateCertificate(), controllers.GenerateCertificate)

	certificateGroup.Get("/user/:userId", validators.UserID(), controllers.GetUserCertificates)
	certificateGroup.Get("/verify/:number", validators.CertificateNumber(), controllers.VerifyCertificate)

	certificateGroup.Get("/:id", validators.CertificateID(), controllers.GetCertificate)
}
