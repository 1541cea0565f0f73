package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ekklesia/church-directory/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, first_name, last_name, password_hash, role, is_active, created_at, updated_at, last_login_at`

func scanUser(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.FirstName,
		&ur.LastName,
		&ur.PasswordHash,
		&ur.Role,
		&ur.IsActive,
		&ur.CreatedAt,
		&ur.UpdatedAt,
		&ur.LastLoginAt,
	)
	return ur, err
}

func isDuplicateKey(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// ---------- auth.UserRepo ----------

// GetByEmail matches the email exactly, no case folding.
func (r *UserRepo) GetByEmail(ctx context.Context, email string, activeOnly bool) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	q := `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	if activeOnly {
		q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1 AND is_active = TRUE
LIMIT 1;
`
	}
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	q := `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	q := `
INSERT INTO users (id, email, first_name, last_name, password_hash, role, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING ` + userColumns + `;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, string(u.Role),
		u.IsActive, u.CreatedAt, u.UpdatedAt,
	))
	if err != nil {
		if isDuplicateKey(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) error {
	if u.ID == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    role = $3,
    is_active = $4,
    updated_at = $5,
    last_login_at = $6
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		u.ID, u.PasswordHash, string(u.Role), u.IsActive, u.UpdatedAt, u.LastLoginAt,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	q := `
SELECT ` + userColumns + `
FROM users
WHERE is_active = TRUE
ORDER BY email ASC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(
			&ur.ID,
			&ur.Email,
			&ur.FirstName,
			&ur.LastName,
			&ur.PasswordHash,
			&ur.Role,
			&ur.IsActive,
			&ur.CreatedAt,
			&ur.UpdatedAt,
			&ur.LastLoginAt,
		); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		users = append(users, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return users, nil
}
