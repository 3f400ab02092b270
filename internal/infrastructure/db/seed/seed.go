// Package seed loads the demo catalog into any repository set, so the
// memory and MySQL drivers start from identical data.
package seed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// Repos is the repository set Demo writes through.
type Repos struct {
	Users      ports.UserRepository
	Categories ports.CategoryRepository
	Courses    ports.CourseRepository
	Sections   ports.SectionRepository
	Lessons    ports.LessonRepository
}

// Demo loads the demo catalog: an admin instructor, the five standard
// categories, three featured courses and the first two sections of the
// bootcamp with their lessons. A store that already holds the admin account
// is left untouched, so running it at every startup is safe.
func Demo(ctx context.Context, r Repos) error {
	_, err := r.Users.FindByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed: check admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}
	admin, err := r.Users.Create(ctx, &domain.User{
		Username:     AdminUsername,
		PasswordHash: string(hash),
		Email:        "admin@learnhub.com",
		FirstName:    "Admin",
		LastName:     "User",
		Bio:          "LearnHub Administrator",
		IsAdmin:      true,
		IsInstructor: true,
		AvatarURL:    "https://i.pravatar.cc/150?u=admin@learnhub.com",
	})
	if err != nil {
		return err
	}

	categories := []domain.Category{
		{Name: "Development", Slug: "development", IconName: "laptop-code", ColorClass: "primary", Description: "Web, Mobile & Software Development"},
		{Name: "Business", Slug: "business", IconName: "chart-line", ColorClass: "secondary", Description: "Finance, Entrepreneurship, Sales"},
		{Name: "Data Science", Slug: "data-science", IconName: "database", ColorClass: "purple-600", Description: "Machine Learning, AI, Analytics"},
		{Name: "Design", Slug: "design", IconName: "paint-brush", ColorClass: "pink-600", Description: "UI/UX, Graphic Design, Animation"},
		{Name: "Marketing", Slug: "marketing", IconName: "bullhorn", ColorClass: "orange-500", Description: "Digital Marketing, SEO, Social Media"},
	}
	catIDs := make(map[string]int, len(categories))
	for i := range categories {
		created, err := r.Categories.Create(ctx, &categories[i])
		if err != nil {
			return err
		}
		catIDs[created.Slug] = created.ID
	}

	webDev, err := r.Courses.Create(ctx, &domain.Course{
		Title:         "Complete Web Developer Bootcamp",
		Slug:          "web-developer-bootcamp",
		Description:   "Learn HTML, CSS, JavaScript, React, Node.js and more to become a full-stack web developer",
		Price:         8999,
		ThumbnailURL:  "https://images.unsplash.com/photo-1498050108023-c5249f4df085?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		InstructorID:  admin.ID,
		CategoryID:    catIDs["development"],
		Level:         domain.LevelBeginner,
		DurationHours: 36,
		IsFeatured:    true,
	})
	if err != nil {
		return err
	}

	if _, err := r.Courses.Create(ctx, &domain.Course{
		Title:         "Data Science & Machine Learning",
		Slug:          "data-science-machine-learning",
		Description:   "Master data analysis, visualization, and machine learning with Python and R",
		Price:         12999,
		ThumbnailURL:  "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		InstructorID:  admin.ID,
		CategoryID:    catIDs["data-science"],
		Level:         domain.LevelIntermediate,
		DurationHours: 42,
		IsFeatured:    true,
	}); err != nil {
		return err
	}

	if _, err := r.Courses.Create(ctx, &domain.Course{
		Title:         "Digital Marketing Fundamentals",
		Slug:          "digital-marketing-fundamentals",
		Description:   "Learn SEO, social media marketing, email campaigns and analytics basics",
		Price:         0,
		ThumbnailURL:  "https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80",
		InstructorID:  admin.ID,
		CategoryID:    catIDs["marketing"],
		Level:         domain.LevelBeginner,
		DurationHours: 18,
		IsFeatured:    true,
	}); err != nil {
		return err
	}

	htmlSection, err := r.Sections.Create(ctx, &domain.Section{
		Title: "HTML Fundamentals", CourseID: webDev.ID, Order: 1,
	})
	if err != nil {
		return err
	}
	cssSection, err := r.Sections.Create(ctx, &domain.Section{
		Title: "CSS Styling", CourseID: webDev.ID, Order: 2,
	})
	if err != nil {
		return err
	}

	lessons := []domain.Lesson{
		{Title: "Introduction to HTML", Description: "Learn the basics of HTML structure", VideoURL: "https://www.youtube.com/watch?v=UB1O30fR-EE", SectionID: htmlSection.ID, Order: 1, DurationMinutes: 15},
		{Title: "HTML Elements and Tags", Description: "Understanding different HTML elements and their purpose", VideoURL: "https://www.youtube.com/watch?v=UB1O30fR-EE", SectionID: htmlSection.ID, Order: 2, DurationMinutes: 25},
		{Title: "CSS Selectors", Description: "Learn how to select and style HTML elements", VideoURL: "https://www.youtube.com/watch?v=1PnVor36_40", SectionID: cssSection.ID, Order: 1, DurationMinutes: 20},
		{Title: "Flexbox Layout", Description: "Master modern CSS layouts with flexbox", VideoURL: "https://www.youtube.com/watch?v=JJSoEo8JSnc", SectionID: cssSection.ID, Order: 2, DurationMinutes: 30},
	}
	for i := range lessons {
		if _, err := r.Lessons.Create(ctx, &lessons[i]); err != nil {
			return err
		}
	}

	return nil
}
