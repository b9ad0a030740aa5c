package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a university course that resources attach to.
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"unique;not null" json:"code"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Semester    int            `json:"semester"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Resources []CourseResource `gorm:"foreignKey:CourseID" json:"resources,omitempty"`
	// ResourceCount is not persisted; computed at query time
	ResourceCount int `gorm:"-" json:"resource_count"`
}

// CourseResource is user-contributed course material (notes, past exams,
// links).
type CourseResource struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Type        string         `gorm:"not null" json:"type"`
	Content     string         `json:"content"`
	FileURL     string         `json:"file_url"`
	Year        int            `json:"year"`
	Semester    int            `json:"semester"`
	CourseID    uint           `gorm:"not null;index" json:"course_id"`
	UploaderID  uint           `gorm:"not null" json:"uploader_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Course   Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Uploader User   `gorm:"foreignKey:UploaderID" json:"uploader"`
}
