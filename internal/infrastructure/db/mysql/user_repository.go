package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

const userColumns = "id, username, password_hash, email, first_name, last_name, bio, is_admin, is_instructor, avatar_url, created_at"

// UserRepository implements ports.UserRepository on MySQL.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var bio sql.NullString
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&bio,
		&u.IsAdmin,
		&u.IsInstructor,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Bio = bio.String
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, first_name, last_name, bio, is_admin, is_instructor, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.FirstName, user.LastName,
		user.Bio, user.IsAdmin, user.IsInstructor, user.AvatarURL,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: last insert id: %w", err)
	}
	return r.FindByID(ctx, int(id))
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) UpdateRoles(ctx context.Context, id int, in ports.UpdateUserRolesInput) (*domain.User, error) {
	sets := []string{}
	args := []any{}
	if in.IsAdmin != nil {
		sets = append(sets, "is_admin = ?")
		args = append(args, *in.IsAdmin)
	}
	if in.IsInstructor != nil {
		sets = append(sets, "is_instructor = ?")
		args = append(args, *in.IsInstructor)
	}
	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE users SET " + joinSets(sets) + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("update user roles: %w", err)
		}
	}
	return r.FindByID(ctx, id)
}
