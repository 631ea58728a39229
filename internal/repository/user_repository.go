package repository

import (
	"context"
	"time"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

type UserRepository struct {
	pool PgxIface
}

func NewUserRepository(pool PgxIface) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new account. A duplicate email surfaces as ErrConflict
// via the unique index, so concurrent registrations need no pre-check.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, campus string, role models.UserRole) (*models.User, error) {
	start := time.Now()
	query := `
		INSERT INTO users (email, password_hash, campus, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, campus, role, created_at, updated_at
	`

	user, err := r.scanUser(r.pool.QueryRow(ctx, query, email, passwordHash, campus, string(role)))
	recordDBCall("users.create", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	query := `
		SELECT id, email, password_hash, campus, role, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	user, err := r.scanUser(r.pool.QueryRow(ctx, query, email))
	recordDBCall("users.get_by_email", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	start := time.Now()
	query := `
		SELECT id, email, password_hash, campus, role, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1
	`

	user, err := r.scanUser(r.pool.QueryRow(ctx, query, id))
	recordDBCall("users.get_by_id", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *UserRepository) scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Campus,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = models.UserRole(role)
	return &user, nil
}
