package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, role, account_status, avatar_url, created_at, last_login`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role, status string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &role, &status,
		&u.AvatarURL, &u.CreatedAt, &u.LastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	u.Status = entity.AccountStatus(status)
	return u, nil
}

// mapUniqueViolation converts a unique-constraint failure into the
// corresponding domain error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return entity.ErrDuplicateEmail
		}
		return entity.ErrDuplicateUsername
	}
	return err
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, account_status, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, u.Username, u.Email, u.Password, string(u.Role), string(u.Status), u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1
	`, username))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, role = $3, account_status = $4, avatar_url = $5
		WHERE id = $6
	`, u.Username, u.Email, string(u.Role), string(u.Status), u.AvatarURL, u.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if res.RowsAffected() == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login = $1 WHERE id = $2
	`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(id string) (bool, error) {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *UserRepository) List() ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListByRole(role entity.Role) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC
	`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListByStatus(status entity.AccountStatus) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users WHERE account_status = $1 ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Stats() (*entity.UserStats, error) {
	ctx := context.Background()
	s := &entity.UserStats{}
	row := r.pool.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE account_status = 'active'),
			count(*) FILTER (WHERE account_status = 'inactive'),
			count(*) FILTER (WHERE account_status = 'suspended'),
			count(*) FILTER (WHERE role = 'student'),
			count(*) FILTER (WHERE role = 'admin'),
			count(*) FILTER (WHERE role = 'super-admin')
		FROM users
	`)
	if err := row.Scan(&s.TotalUsers, &s.ActiveUsers, &s.InactiveUsers, &s.SuspendedUsers,
		&s.Students, &s.Admins, &s.SuperAdmins); err != nil {
		return nil, err
	}
	return s, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
