package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnsphere/backend/config"
	"learnsphere/backend/middleware"
	"learnsphere/backend/models"
	"learnsphere/backend/utils"
)

type ReviewsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewReviewsController(db *gorm.DB, cfg *config.Config) *ReviewsController {
	return &ReviewsController{DB: db, Cfg: cfg}
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview stores the review with a snapshot of the acting user's name.
// Later name changes do not propagate. The rating is stored as sent.
func (rc *ReviewsController) AddReview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Could not validate credentials")
	}

	courseID := c.Params("id")

	var input ReviewInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	review := models.Review{
		UserID:   user.ID,
		CourseID: courseID,
		Rating:   input.Rating,
		Comment:  input.Comment,
		UserName: user.Name,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		return utils.InternalServerError(c, "Could not create review")
	}

	return c.JSON(fiber.Map{"status": "success"})
}

func (rc *ReviewsController) GetReviews(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var reviews []models.Review
	if err := rc.DB.Where("course_id = ?", courseID).Find(&reviews).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := []fiber.Map{}
	for _, r := range reviews {
		userName := r.UserName
		if userName == "" {
			userName = "Unknown"
		}
		result = append(result, fiber.Map{
			"id":         r.ID,
			"user_name":  userName,
			"rating":     r.Rating,
			"comment":    r.Comment,
			"created_at": r.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(result)
}
