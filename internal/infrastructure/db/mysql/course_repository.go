package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

const courseColumns = "id, title, slug, description, price, thumbnail_url, instructor_id, category_id, level, duration_hours, is_featured, created_at, updated_at"

// CourseRepository implements ports.CourseRepository on MySQL.
type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row interface{ Scan(...any) error }) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Slug,
		&c.Description,
		&c.Price,
		&c.ThumbnailURL,
		&c.InstructorID,
		&c.CategoryID,
		&c.Level,
		&c.DurationHours,
		&c.IsFeatured,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE 1=1"
	args := []any{}
	if filter.CategoryID != 0 {
		query += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.Featured {
		query += " AND is_featured = TRUE"
	}
	if filter.Search != "" {
		query += " AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)"
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	out := []*domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return out, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id int) (*domain.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE slug = ?", slug))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course by slug: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID int) ([]*domain.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE instructor_id = ? ORDER BY id", instructorID)
	if err != nil {
		return nil, fmt.Errorf("list courses by instructor: %w", err)
	}
	defer rows.Close()

	out := []*domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return out, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	query := `
		INSERT INTO courses (title, slug, description, price, thumbnail_url, instructor_id, category_id, level, duration_hours, is_featured)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		course.Title, course.Slug, course.Description, course.Price, course.ThumbnailURL,
		course.InstructorID, course.CategoryID, course.Level, course.DurationHours, course.IsFeatured)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrCourseExists
		}
		return nil, fmt.Errorf("create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create course: last insert id: %w", err)
	}
	return r.FindByID(ctx, int(id))
}

func (r *CourseRepository) Update(ctx context.Context, id int, in ports.UpdateCourseInput) (*domain.Course, error) {
	sets := []string{}
	args := []any{}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *in.Slug)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *in.Price)
	}
	if in.ThumbnailURL != nil {
		sets = append(sets, "thumbnail_url = ?")
		args = append(args, *in.ThumbnailURL)
	}
	if in.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *in.CategoryID)
	}
	if in.Level != nil {
		sets = append(sets, "level = ?")
		args = append(args, *in.Level)
	}
	if in.DurationHours != nil {
		sets = append(sets, "duration_hours = ?")
		args = append(args, *in.DurationHours)
	}
	if in.IsFeatured != nil {
		sets = append(sets, "is_featured = ?")
		args = append(args, *in.IsFeatured)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE courses SET " + joinSets(sets) + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			if isDuplicateKey(err) {
				return nil, domain.ErrCourseExists
			}
			return nil, fmt.Errorf("update course: %w", err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *CourseRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete course: rows affected: %w", err)
	}
	return n > 0, nil
}
