package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnsphere/backend/models"
)

func createQuiz(t *testing.T, app *fiber.App, courseID, title string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/courses/"+courseID+"/quizzes", map[string]string{
		"title": title,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decodeBody(t, resp)["id"].(string)
}

func TestCreateQuizDefaults(t *testing.T) {
	app, _, _ := setupApp(t)

	courseID := createCourse(t, app)
	quizID := createQuiz(t, app, courseID, "Checkpoint")

	resp := doJSON(t, app, "GET", "/api/quizzes/"+quizID, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	quiz := decodeBody(t, resp)
	assert.Equal(t, "Checkpoint", quiz["title"])
	assert.Empty(t, quiz["questions"])

	rewards := quiz["rewards"].(map[string]interface{})
	assert.Equal(t, float64(10), rewards["first_try"])
	assert.Equal(t, float64(7), rewards["second_try"])
	assert.Equal(t, float64(5), rewards["third_try"])
	assert.Equal(t, float64(2), rewards["fourth_plus"])
}

func TestAddQuestionReturnsIndex(t *testing.T) {
	app, _, _ := setupApp(t)

	courseID := createCourse(t, app)
	quizID := createQuiz(t, app, courseID, "Checkpoint")

	question := map[string]interface{}{
		"text": "What is Odoo?",
		"choices": []map[string]interface{}{
			{"text": "A CRM", "correct": true},
			{"text": "A fruit", "correct": false},
		},
	}

	resp := doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/questions", question, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), decodeBody(t, resp)["id"])

	resp = doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/questions", question, "")
	assert.Equal(t, float64(1), decodeBody(t, resp)["id"])

	resp = doJSON(t, app, "GET", "/api/quizzes/"+quizID, nil, "")
	quiz := decodeBody(t, resp)
	questions := quiz["questions"].([]interface{})
	require.Len(t, questions, 2)
	first := questions[0].(map[string]interface{})
	assert.Equal(t, "What is Odoo?", first["text"])
	assert.Len(t, first["choices"].([]interface{}), 2)
}

func TestAddQuestionQuizNotFound(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/quizzes/00000000-0000-0000-0000-000000000000/questions", map[string]interface{}{
		"text":    "Lost",
		"choices": []map[string]interface{}{},
	}, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSetRewardsOmittedTiersResetToStock(t *testing.T) {
	app, _, _ := setupApp(t)

	courseID := createCourse(t, app)
	quizID := createQuiz(t, app, courseID, "Checkpoint")

	// Store a fully customized table first.
	resp := doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/rewards", map[string]int{
		"first_try":   100,
		"second_try":  90,
		"third_try":   80,
		"fourth_plus": 70,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Supplying only first_try resets the rest to 7/5/2, not to 90/80/70.
	resp = doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/rewards", map[string]int{
		"first_try": 15,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/quizzes/"+quizID, nil, "")
	rewards := decodeBody(t, resp)["rewards"].(map[string]interface{})
	assert.Equal(t, float64(15), rewards["first_try"])
	assert.Equal(t, float64(7), rewards["second_try"])
	assert.Equal(t, float64(5), rewards["third_try"])
	assert.Equal(t, float64(2), rewards["fourth_plus"])
}

func TestSubmitQuizAwardsTieredPoints(t *testing.T) {
	app, db, _ := setupApp(t)

	token := registerUser(t, app, "Alice", "alice@example.com", "password123")
	courseID := createCourse(t, app)
	quizID := createQuiz(t, app, courseID, "Checkpoint")

	// First passing attempt earns the first_try tier.
	resp := doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/submit", map[string]int{"score": 85}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Equal(t, float64(10), result["points_earned"])
	assert.Equal(t, float64(10), result["total_points"])

	// Second passing attempt drops to the second_try tier.
	resp = doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/submit", map[string]int{"score": 92}, token)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(7), result["points_earned"])
	assert.Equal(t, float64(17), result["total_points"])

	// A failing score still counts as an attempt but earns nothing.
	resp = doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/submit", map[string]int{"score": 40}, token)
	result = decodeBody(t, resp)
	assert.Equal(t, float64(0), result["points_earned"])
	attempt := result["attempt"].(map[string]interface{})
	assert.Equal(t, float64(3), attempt["attempt_number"])

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	assert.Equal(t, 17, user.Points)
	assert.Equal(t, "Newbie", user.Rank)
}

func TestSubmitQuizRankUpEarnsBadge(t *testing.T) {
	app, db, _ := setupApp(t)

	token := registerUser(t, app, "Alice", "alice@example.com", "password123")
	courseID := createCourse(t, app)
	quizID := createQuiz(t, app, courseID, "Checkpoint")

	resp := doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/rewards", map[string]int{
		"first_try": 120,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/submit", map[string]int{"score": 100}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Equal(t, "Master", result["rank"])

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	assert.Equal(t, 120, user.Points)
	assert.Equal(t, "Master", user.Rank)
	assert.Contains(t, []string(user.Badges), "Master")
}

func TestSubmitQuizRequiresAuth(t *testing.T) {
	app, _, _ := setupApp(t)

	courseID := createCourse(t, app)
	quizID := createQuiz(t, app, courseID, "Checkpoint")

	resp := doJSON(t, app, "POST", "/api/quizzes/"+quizID+"/submit", map[string]int{"score": 85}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
