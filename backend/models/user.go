package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleInstructor = "instructor"
)

type User struct {
	ID           string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string                      `gorm:"not null" json:"name"`
	Email        string                      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string                      `gorm:"not null" json:"-"`
	Role         string                      `gorm:"default:user" json:"role"` // admin, user, instructor
	Points       int                         `gorm:"default:0" json:"points"`
	Rank         string                      `gorm:"default:Newbie" json:"rank"`
	Badges       datatypes.JSONSlice[string] `json:"badges"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RankForPoints maps a point total to its display rank.
func RankForPoints(points int) string {
	switch {
	case points >= 120:
		return "Master"
	case points >= 100:
		return "Expert"
	case points >= 80:
		return "Specialist"
	case points >= 60:
		return "Achiever"
	case points >= 40:
		return "Explorer"
	default:
		return "Newbie"
	}
}

// QuizAttempt records one graded pass over a quiz. AttemptNumber starts at 1
// and drives the reward tier selection.
type QuizAttempt struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;index;not null" json:"user_id"`
	QuizID        string    `gorm:"type:uuid;index;not null" json:"quiz_id"`
	Score         int       `json:"score"`
	AttemptNumber int       `json:"attempt_number"`
	PointsEarned  int       `json:"points_earned"`
	CreatedAt     time.Time `json:"created_at"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
