package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnsphere/backend/config"
	"learnsphere/backend/controllers"
	"learnsphere/backend/middleware"
	"learnsphere/backend/models"
	"learnsphere/backend/utils"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, store utils.BlobStore) {
	authRequired := middleware.AuthMiddleware(db, cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the LearnSphere API"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/register", authController.Register)
	app.Post("/api/login", authController.Login)
	app.Get("/api/users", authController.ListUsers)

	// Course catalog
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/api/courses", coursesController.GetCourses)
	app.Post("/api/courses", coursesController.CreateCourse)
	app.Get("/api/courses/:id", coursesController.GetCourseDetails)
	app.Put("/api/courses/:id", coursesController.UpdateCourse)
	app.Delete("/api/courses/:id", coursesController.DeleteCourse)
	app.Post("/api/courses/:id/lessons", coursesController.AddLesson)
	app.Put("/api/lessons/:id", coursesController.UpdateLesson)
	app.Delete("/api/lessons/:id", coursesController.DeleteLesson)
	app.Post("/api/admin/cleanup", authRequired, adminOnly, coursesController.CleanupOrphans)

	// Quiz engine
	quizzesController := controllers.NewQuizzesController(db, cfg)
	app.Post("/api/courses/:id/quizzes", quizzesController.CreateQuiz)
	app.Get("/api/quizzes/:id", quizzesController.GetQuiz)
	app.Post("/api/quizzes/:id/questions", quizzesController.AddQuestion)
	app.Post("/api/quizzes/:id/rewards", quizzesController.SetRewards)
	app.Post("/api/quizzes/:id/submit", authRequired, quizzesController.SubmitQuiz)

	// Enrollment tracker
	enrollmentController := controllers.NewEnrollmentController(db, cfg)
	app.Post("/api/enroll/:course_id", authRequired, enrollmentController.Enroll)
	app.Post("/api/enroll/:course_id/complete", authRequired, enrollmentController.CompleteLesson)
	app.Get("/api/stats", enrollmentController.GetStats)

	// Review ledger
	reviewsController := controllers.NewReviewsController(db, cfg)
	app.Post("/api/courses/:id/reviews", authRequired, reviewsController.AddReview)
	app.Get("/api/courses/:id/reviews", reviewsController.GetReviews)

	// Uploads
	uploadsController := controllers.NewUploadsController(store)
	app.Post("/api/upload", uploadsController.Upload)
}
