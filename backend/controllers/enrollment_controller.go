package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnsphere/backend/config"
	"learnsphere/backend/middleware"
	"learnsphere/backend/models"
	"learnsphere/backend/utils"
)

type EnrollmentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEnrollmentController(db *gorm.DB, cfg *config.Config) *EnrollmentController {
	return &EnrollmentController{DB: db, Cfg: cfg}
}

type CompleteLessonInput struct {
	LessonID string `json:"lesson_id"`
}

// Enroll is idempotent: the insert is guarded by the (user_id, course_id)
// unique index via ON CONFLICT DO NOTHING, so concurrent calls for the same
// pair cannot create duplicates.
func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Could not validate credentials")
	}

	courseID := c.Params("course_id")

	enrollment := models.Enrollment{
		UserID:   user.ID,
		CourseID: courseID,
	}

	res := ec.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&enrollment)
	if res.Error != nil {
		return utils.InternalServerError(c, "Could not enroll")
	}

	if res.RowsAffected == 0 {
		return c.JSON(fiber.Map{
			"message":          "Already enrolled",
			"already_enrolled": true,
		})
	}

	return c.JSON(fiber.Map{
		"status":           "enrolled",
		"already_enrolled": false,
	})
}

// CompleteLesson adds the lesson to the enrollment's completed set and
// recomputes the progress percentage against the course's current lesson
// count. Re-completing a lesson is a no-op.
func (ec *EnrollmentController) CompleteLesson(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Could not validate credentials")
	}

	courseID := c.Params("course_id")

	var input CompleteLessonInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.LessonID == "" {
		return utils.BadRequest(c, "lesson_id is required")
	}

	var enrollment models.Enrollment
	if err := ec.DB.Where("user_id = ? AND course_id = ?", user.ID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !enrollment.HasCompleted(input.LessonID) {
		enrollment.CompletedLessons = append(enrollment.CompletedLessons, input.LessonID)
	}

	var totalLessons int64
	ec.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&totalLessons)

	if totalLessons > 0 {
		enrollment.ProgressPercent = int(float64(len(enrollment.CompletedLessons)) / float64(totalLessons) * 100)
		if enrollment.ProgressPercent > 100 {
			enrollment.ProgressPercent = 100
		}
	}

	if err := ec.DB.Save(&enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	return c.JSON(fiber.Map{
		"message":    "Progress updated",
		"enrollment": enrollment,
	})
}

// GetStats returns the platform-wide aggregate. Revenue walks every
// enrollment and resolves its course one lookup at a time; enrollments whose
// course was deleted are skipped. The figures are not a snapshot: concurrent
// writes can make counts and revenue reflect different moments.
func (ec *EnrollmentController) GetStats(c *fiber.Ctx) error {
	var totalCourses, totalUsers, totalEnrollments int64
	ec.DB.Model(&models.Course{}).Count(&totalCourses)
	ec.DB.Model(&models.User{}).Count(&totalUsers)
	ec.DB.Model(&models.Enrollment{}).Count(&totalEnrollments)

	var enrollments []models.Enrollment
	if err := ec.DB.Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	revenue := 0.0
	for _, e := range enrollments {
		var course models.Course
		if err := ec.DB.First(&course, "id = ?", e.CourseID).Error; err != nil {
			continue
		}
		revenue += course.Price
	}

	return c.JSON(fiber.Map{
		"total_courses":     totalCourses,
		"total_users":       totalUsers,
		"total_enrollments": totalEnrollments,
		"total_revenue":     revenue,
		"recent_activity":   []fiber.Map{},
	})
}
