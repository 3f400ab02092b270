package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

func setupCourseTestRepository(t *testing.T) (*CourseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCourseRepository(db), mock
}

func courseRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "description", "price", "thumbnail_url",
		"instructor_id", "category_id", "level", "duration_hours", "is_featured",
		"created_at", "updated_at",
	}).AddRow(1, "Go Basics", "go-basics", "intro", 4999, "", 1, 1, "beginner", 10, true, now, now)
}

func TestCourseRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WithArgs("Go Basics", "go-basics", "intro", 4999, "", 1, 1, domain.LevelBeginner, 10, true).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectQuery(`SELECT .+ FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(courseRows(time.Now()))
			},
		},
		{
			name: "duplicate slug",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WithArgs("Go Basics", "go-basics", "intro", 4999, "", 1, 1, domain.LevelBeginner, 10, true).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'go-basics' for key 'uq_courses_slug'"})
			},
			expectedError: domain.ErrCourseExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupCourseTestRepository(t)
			tt.setupMock(mock)

			course, err := repo.Create(context.Background(), &domain.Course{
				Title: "Go Basics", Slug: "go-basics", Description: "intro", Price: 4999,
				InstructorID: 1, CategoryID: 1, Level: domain.LevelBeginner, DurationHours: 10, IsFeatured: true,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, course.ID)
				assert.Equal(t, "go-basics", course.Slug)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_List_Filters(t *testing.T) {
	repo, mock := setupCourseTestRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM courses WHERE 1=1 AND category_id = \? AND is_featured = TRUE AND \(LOWER\(title\) LIKE \? OR LOWER\(description\) LIKE \?\) ORDER BY id`).
		WithArgs(1, "%go%", "%go%").
		WillReturnRows(courseRows(time.Now()))

	got, err := repo.List(context.Background(), ports.CourseFilter{CategoryID: 1, Featured: true, Search: "Go"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "go-basics", got[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_List_Empty(t *testing.T) {
	repo, mock := setupCourseTestRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM courses WHERE 1=1 ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "slug", "description", "price", "thumbnail_url",
			"instructor_id", "category_id", "level", "duration_hours", "is_featured",
			"created_at", "updated_at",
		}))

	got, err := repo.List(context.Background(), ports.CourseFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCourseRepository_FindBySlug_NotFound(t *testing.T) {
	repo, mock := setupCourseTestRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM courses WHERE slug = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCourseRepository_Update_FieldMask(t *testing.T) {
	repo, mock := setupCourseTestRepository(t)

	mock.ExpectExec(`UPDATE courses SET title = \?, price = \? WHERE id = \?`).
		WithArgs("New Title", 999, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM courses WHERE id = \?`).
		WithArgs(1).
		WillReturnRows(courseRows(time.Now()))

	title := "New Title"
	price := 999
	_, err := repo.Update(context.Background(), 1, ports.UpdateCourseInput{Title: &title, Price: &price})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Delete(t *testing.T) {
	repo, mock := setupCourseTestRepository(t)

	mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, existed)
}
