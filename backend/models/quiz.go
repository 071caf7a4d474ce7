package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// QuizRewards is the point table applied on quiz completion, selected by the
// learner's attempt number. The stock values are 10/7/5/2.
type QuizRewards struct {
	FirstTry   int `gorm:"default:10" json:"first_try"`
	SecondTry  int `gorm:"default:7" json:"second_try"`
	ThirdTry   int `gorm:"default:5" json:"third_try"`
	FourthPlus int `gorm:"default:2" json:"fourth_plus"`
}

func DefaultQuizRewards() QuizRewards {
	return QuizRewards{FirstTry: 10, SecondTry: 7, ThirdTry: 5, FourthPlus: 2}
}

type Quiz struct {
	ID        string                        `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string                        `gorm:"not null" json:"title"`
	CourseID  string                        `gorm:"type:uuid;index" json:"course_id"` // weak reference to Course
	Questions datatypes.JSONSlice[Question] `json:"questions"`
	Rewards   QuizRewards                   `gorm:"embedded;embeddedPrefix:reward_" json:"rewards"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// RewardForAttempt maps an attempt number to its point value. Attempts are
// counted from 1; everything past the third try earns the fourth_plus tier.
func (r QuizRewards) RewardForAttempt(attempt int) int {
	switch {
	case attempt <= 1:
		return r.FirstTry
	case attempt == 2:
		return r.SecondTry
	case attempt == 3:
		return r.ThirdTry
	default:
		return r.FourthPlus
	}
}
