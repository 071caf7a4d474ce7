package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	Image            string    `json:"image"`
	Description      string    `json:"description"`
	Status           string    `gorm:"default:draft" json:"status"` // draft, published
	Price            float64   `gorm:"default:0" json:"price"`
	AccessType       string    `gorm:"default:open" json:"access_type"`    // open, invite, payment
	Visibility       string    `gorm:"default:everyone" json:"visibility"` // everyone, signed_in
	Tags             string    `json:"tags"`                               // comma-separated
	EnrollmentsCount int       `gorm:"default:0" json:"enrollments_count"`
	ViewsCount       int       `gorm:"default:0" json:"views_count"`
	TotalDuration    string    `gorm:"default:00:00" json:"total_duration"`
	OwnerID          string    `json:"owner_id"`       // weak reference to User
	ResponsibleID    string    `json:"responsible_id"` // weak reference to User
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Lesson struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string    `gorm:"not null" json:"title"`
	Type              string    `json:"type"` // video, document, image
	Category          string    `json:"category"`
	ContentURL        string    `json:"content_url"`
	Description       string    `json:"description"`
	Duration          string    `gorm:"default:00:00" json:"duration"`
	AllowDownload     bool      `gorm:"default:false" json:"allow_download"`
	AdditionalFileURL string    `json:"additional_file_url"`
	AdditionalLink    string    `json:"additional_link"`
	CourseID          string    `gorm:"type:uuid;index" json:"course_id"` // weak reference to Course
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
