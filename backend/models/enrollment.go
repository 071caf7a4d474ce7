package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment links a user to a course. The composite unique index is what
// makes Enroll's insert-if-absent atomic: concurrent enrolls for the same
// pair cannot both land.
type Enrollment struct {
	ID               string                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string                      `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_pair" json:"user_id"`
	CourseID         string                      `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_pair" json:"course_id"`
	CompletedLessons datatypes.JSONSlice[string] `json:"completed_lessons"`
	ProgressPercent  int                         `gorm:"default:0" json:"progress_percent"`
	EnrolledAt       time.Time                   `json:"enrolled_at"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now().UTC()
	}
	return nil
}

// HasCompleted reports whether the lesson is already in the completed set.
func (e Enrollment) HasCompleted(lessonID string) bool {
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
