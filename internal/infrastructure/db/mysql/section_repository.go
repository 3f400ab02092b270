package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// SectionRepository implements ports.SectionRepository on MySQL.
type SectionRepository struct {
	db *sql.DB
}

func NewSectionRepository(db *sql.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func scanSection(row interface{ Scan(...any) error }) (*domain.Section, error) {
	var s domain.Section
	if err := row.Scan(&s.ID, &s.Title, &s.CourseID, &s.Order); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) ListByCourse(ctx context.Context, courseID int) ([]*domain.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, course_id, `order` FROM sections WHERE course_id = ? ORDER BY `order`", courseID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	out := []*domain.Section{}
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return out, nil
}

func (r *SectionRepository) FindByID(ctx context.Context, id int) (*domain.Section, error) {
	s, err := scanSection(r.db.QueryRowContext(ctx,
		"SELECT id, title, course_id, `order` FROM sections WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find section by id: %w", err)
	}
	return s, nil
}

func (r *SectionRepository) Create(ctx context.Context, section *domain.Section) (*domain.Section, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO sections (title, course_id, `order`) VALUES (?, ?, ?)",
		section.Title, section.CourseID, section.Order)
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create section: last insert id: %w", err)
	}
	return r.FindByID(ctx, int(id))
}

func (r *SectionRepository) Update(ctx context.Context, id int, in ports.UpdateSectionInput) (*domain.Section, error) {
	sets := []string{}
	args := []any{}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Order != nil {
		sets = append(sets, "`order` = ?")
		args = append(args, *in.Order)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE sections SET "+joinSets(sets)+" WHERE id = ?", args...); err != nil {
			return nil, fmt.Errorf("update section: %w", err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *SectionRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sections WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete section: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete section: rows affected: %w", err)
	}
	return n > 0, nil
}
