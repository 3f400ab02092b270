package domain

import (
	"errors"
	"time"
)

// CourseLevel is the declared difficulty of a course.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")
var ErrCourseNotFound = errors.New("course not found")
var ErrCourseExists = errors.New("course already exists")
var ErrSectionNotFound = errors.New("section not found")
var ErrLessonNotFound = errors.New("lesson not found")

// Category is static reference data grouping courses.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	IconName    string `json:"icon_name"`
	ColorClass  string `json:"color_class"`
	Description string `json:"description,omitempty"`
}

// Course is the marketplace aggregate owned by its instructor.
// Price is in the minor currency unit; 0 means free.
type Course struct {
	ID            int         `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	Price         int         `json:"price"`
	ThumbnailURL  string      `json:"thumbnail_url,omitempty"`
	InstructorID  int         `json:"instructor_id"`
	CategoryID    int         `json:"category_id"`
	Level         CourseLevel `json:"level"`
	DurationHours int         `json:"duration_hours"`
	IsFeatured    bool        `json:"is_featured"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Section groups lessons inside a course. Order defines display sequencing.
type Section struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	CourseID int    `json:"course_id"`
	Order    int    `json:"order"`
}

// Lesson is a single video unit inside a section.
type Lesson struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	VideoURL        string `json:"video_url"`
	SectionID       int    `json:"section_id"`
	Order           int    `json:"order"`
	DurationMinutes int    `json:"duration_minutes"`
}
