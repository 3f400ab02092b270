package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// ReviewRepository implements ports.ReviewRepository on MySQL.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func scanReview(row interface{ Scan(...any) error }) (*domain.Review, error) {
	var rv domain.Review
	var comment sql.NullString
	err := row.Scan(&rv.ID, &rv.UserID, &rv.CourseID, &rv.Rating, &comment, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	rv.Comment = comment.String
	return &rv, nil
}

func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID int) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, course_id, rating, comment, created_at FROM reviews WHERE course_id = ? ORDER BY id",
		courseID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []*domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

func (r *ReviewRepository) FindByCourseAndUser(ctx context.Context, courseID, userID int) (*domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, rating, comment, created_at FROM reviews WHERE course_id = ? AND user_id = ?",
		courseID, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, course_id, rating, comment) VALUES (?, ?, ?, ?)",
		review.UserID, review.CourseID, review.Rating, review.Comment)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create review: last insert id: %w", err)
	}

	rv, err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, rating, comment, created_at FROM reviews WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return rv, nil
}
