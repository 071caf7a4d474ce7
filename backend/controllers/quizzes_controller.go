package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnsphere/backend/config"
	"learnsphere/backend/middleware"
	"learnsphere/backend/models"
	"learnsphere/backend/utils"
)

type QuizzesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg}
}

type QuizInput struct {
	Title string `json:"title"`
}

type QuestionInput struct {
	Text    string          `json:"text"`
	Choices []models.Choice `json:"choices"`
}

// RewardsInput uses pointers so an omitted tier can be told apart from an
// explicit zero. Omitted tiers fall back to the stock table, not to the
// quiz's previous values.
type RewardsInput struct {
	FirstTry   *int `json:"first_try"`
	SecondTry  *int `json:"second_try"`
	ThirdTry   *int `json:"third_try"`
	FourthPlus *int `json:"fourth_plus"`
}

type SubmitInput struct {
	Score int `json:"score"`
}

// CreateQuiz makes an empty quiz under the course with the stock reward table.
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var input QuizInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	quiz := models.Quiz{
		Title:    input.Title,
		CourseID: courseID,
		Rewards:  models.DefaultQuizRewards(),
	}
	if err := qc.DB.Create(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not create quiz")
	}

	return c.JSON(fiber.Map{"id": quiz.ID})
}

// AddQuestion appends a question and returns its zero-based position. The
// position is only stable as long as questions are never removed or
// reordered; no current operation does either.
func (qc *QuizzesController) AddQuestion(c *fiber.Ctx) error {
	id := c.Params("id")

	var input QuestionInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	quiz.Questions = append(quiz.Questions, models.Question{
		Text:    input.Text,
		Choices: input.Choices,
	})

	if err := qc.DB.Save(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not update quiz")
	}

	return c.JSON(fiber.Map{"id": len(quiz.Questions) - 1})
}

func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	id := c.Params("id")

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	questions := []fiber.Map{}
	for _, q := range quiz.Questions {
		questions = append(questions, fiber.Map{
			"text":    q.Text,
			"choices": q.Choices,
		})
	}

	return c.JSON(fiber.Map{
		"id":        quiz.ID,
		"title":     quiz.Title,
		"questions": questions,
		"rewards":   quiz.Rewards,
	})
}

// SetRewards replaces the whole reward table. A tier missing from the body
// resets to its stock value, not to the previously stored one.
func (qc *QuizzesController) SetRewards(c *fiber.Ctx) error {
	id := c.Params("id")

	var input RewardsInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	rewards := models.DefaultQuizRewards()
	if input.FirstTry != nil {
		rewards.FirstTry = *input.FirstTry
	}
	if input.SecondTry != nil {
		rewards.SecondTry = *input.SecondTry
	}
	if input.ThirdTry != nil {
		rewards.ThirdTry = *input.ThirdTry
	}
	if input.FourthPlus != nil {
		rewards.FourthPlus = *input.FourthPlus
	}
	quiz.Rewards = rewards

	if err := qc.DB.Save(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not update quiz")
	}

	return c.JSON(fiber.Map{"status": "updated"})
}

// SubmitQuiz records a graded attempt and, on a passing score, awards the
// reward tier for the attempt number to the acting user inside one
// transaction. Rank is recomputed from the new total and a rank-up earns a
// badge.
func (qc *QuizzesController) SubmitQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Could not validate credentials")
	}

	id := c.Params("id")

	var input SubmitInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var prior int64
	qc.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).
		Count(&prior)
	attemptNumber := int(prior) + 1

	pointsEarned := 0
	if input.Score >= 70 {
		pointsEarned = quiz.Rewards.RewardForAttempt(attemptNumber)
	}

	attempt := models.QuizAttempt{
		UserID:        user.ID,
		QuizID:        quiz.ID,
		Score:         input.Score,
		AttemptNumber: attemptNumber,
		PointsEarned:  pointsEarned,
	}

	totalPoints := user.Points
	rank := user.Rank

	err := qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		if pointsEarned == 0 {
			return nil
		}

		totalPoints = user.Points + pointsEarned
		rank = models.RankForPoints(totalPoints)

		updates := map[string]interface{}{"points": totalPoints}
		if rank != user.Rank {
			updates["rank"] = rank
			user.Badges = append(user.Badges, rank)
			updates["badges"] = user.Badges
		}

		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not record attempt")
	}

	return c.JSON(fiber.Map{
		"attempt":       attempt,
		"points_earned": pointsEarned,
		"total_points":  totalPoints,
		"rank":          rank,
	})
}
