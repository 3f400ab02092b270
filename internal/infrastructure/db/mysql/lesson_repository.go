package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

const lessonColumns = "id, title, description, video_url, section_id, `order`, duration_minutes"

// LessonRepository implements ports.LessonRepository on MySQL.
type LessonRepository struct {
	db *sql.DB
}

func NewLessonRepository(db *sql.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

func scanLesson(row interface{ Scan(...any) error }) (*domain.Lesson, error) {
	var l domain.Lesson
	var description sql.NullString
	err := row.Scan(&l.ID, &l.Title, &description, &l.VideoURL, &l.SectionID, &l.Order, &l.DurationMinutes)
	if err != nil {
		return nil, err
	}
	l.Description = description.String
	return &l, nil
}

func (r *LessonRepository) ListBySection(ctx context.Context, sectionID int) ([]*domain.Lesson, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+lessonColumns+" FROM lessons WHERE section_id = ? ORDER BY `order`", sectionID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	out := []*domain.Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return out, nil
}

func (r *LessonRepository) FindByID(ctx context.Context, id int) (*domain.Lesson, error) {
	l, err := scanLesson(r.db.QueryRowContext(ctx,
		"SELECT "+lessonColumns+" FROM lessons WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson by id: %w", err)
	}
	return l, nil
}

func (r *LessonRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lessons l
		JOIN sections s ON s.id = l.section_id
		WHERE s.course_id = ?
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lessons by course: %w", err)
	}
	return count, nil
}

func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	query := "INSERT INTO lessons (title, description, video_url, section_id, `order`, duration_minutes) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query,
		lesson.Title, lesson.Description, lesson.VideoURL, lesson.SectionID, lesson.Order, lesson.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create lesson: last insert id: %w", err)
	}
	return r.FindByID(ctx, int(id))
}

func (r *LessonRepository) Update(ctx context.Context, id int, in ports.UpdateLessonInput) (*domain.Lesson, error) {
	sets := []string{}
	args := []any{}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.VideoURL != nil {
		sets = append(sets, "video_url = ?")
		args = append(args, *in.VideoURL)
	}
	if in.Order != nil {
		sets = append(sets, "`order` = ?")
		args = append(args, *in.Order)
	}
	if in.DurationMinutes != nil {
		sets = append(sets, "duration_minutes = ?")
		args = append(args, *in.DurationMinutes)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE lessons SET "+joinSets(sets)+" WHERE id = ?", args...); err != nil {
			return nil, fmt.Errorf("update lesson: %w", err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *LessonRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lesson: rows affected: %w", err)
	}
	return n > 0, nil
}
