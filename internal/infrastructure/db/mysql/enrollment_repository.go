package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// EnrollmentRepository implements ports.EnrollmentRepository on MySQL.
// Per-lesson progress lives in enrollment_progress rows keyed by
// (enrollment_id, lesson_id); a progress write is an upsert of a single row,
// so concurrent writes to distinct lessons never conflict.
type EnrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO enrollments (user_id, course_id) VALUES (?, ?)",
		enrollment.UserID, enrollment.CourseID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create enrollment: last insert id: %w", err)
	}
	return r.FindByID(ctx, int(id))
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id int) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, enrolled_at, is_completed FROM enrollments WHERE id = ?", id).
		Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &e.IsCompleted)
	if err == sql.ErrNoRows {
		return nil, domain.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find enrollment by id: %w", err)
	}

	if err := r.loadProgress(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) FindByCourseAndUser(ctx context.Context, courseID, userID int) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, enrolled_at, is_completed FROM enrollments WHERE course_id = ? AND user_id = ?",
		courseID, userID).
		Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &e.IsCompleted)
	if err == sql.ErrNoRows {
		return nil, domain.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find enrollment by course and user: %w", err)
	}

	if err := r.loadProgress(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, course_id, enrolled_at, is_completed FROM enrollments WHERE user_id = ? ORDER BY id",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Enrollment{}
	for rows.Next() {
		var e domain.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &e.IsCompleted); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	for _, e := range out {
		if err := r.loadProgress(ctx, e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *EnrollmentRepository) SetLessonProgress(ctx context.Context, enrollmentID, lessonID int, completed bool) error {
	query := `
		INSERT INTO enrollment_progress (enrollment_id, lesson_id, completed)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE completed = VALUES(completed)
	`
	if _, err := r.db.ExecContext(ctx, query, enrollmentID, lessonID, completed); err != nil {
		// A missing enrollment trips the foreign key (1452).
		if isForeignKeyViolation(err) {
			return domain.ErrEnrollmentNotFound
		}
		return fmt.Errorf("set lesson progress: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) SetCompleted(ctx context.Context, enrollmentID int, completed bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE enrollments SET is_completed = ? WHERE id = ?", completed, enrollmentID)
	if err != nil {
		return fmt.Errorf("set enrollment completed: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// Either the row is missing or the flag already holds the value;
		// verify before reporting not found.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM enrollments WHERE id = ?)", enrollmentID).Scan(&exists); err != nil {
			return fmt.Errorf("set enrollment completed: %w", err)
		}
		if !exists {
			return domain.ErrEnrollmentNotFound
		}
	}
	return nil
}

func (r *EnrollmentRepository) loadProgress(ctx context.Context, e *domain.Enrollment) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT lesson_id, completed FROM enrollment_progress WHERE enrollment_id = ?", e.ID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	defer rows.Close()

	e.Progress = make(map[string]bool)
	for rows.Next() {
		var lessonID int
		var completed bool
		if err := rows.Scan(&lessonID, &completed); err != nil {
			return fmt.Errorf("scan progress: %w", err)
		}
		e.Progress[strconv.Itoa(lessonID)] = completed
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate progress: %w", err)
	}
	return nil
}
