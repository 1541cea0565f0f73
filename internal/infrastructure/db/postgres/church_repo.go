package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/domain"
)

type ChurchRepo struct {
	db *sql.DB
}

func NewChurchRepo(db *sql.DB) *ChurchRepo {
	return &ChurchRepo{db: db}
}

const churchColumns = `id, name, address, city, state, zip_code, phone, email, website, denomination,
latitude, longitude, status, description, service_schedule, created_at, updated_at, created_by, updated_by, is_active`

// ---------- church.ChurchRepo ----------

func (r *ChurchRepo) GetByID(ctx context.Context, id string, activeOnly bool) (domain.Church, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Church{}, domain.ErrMissingField("id")
	}

	q := `
SELECT ` + churchColumns + `
FROM churches
WHERE id = $1
LIMIT 1;
`
	if activeOnly {
		q = `
SELECT ` + churchColumns + `
FROM churches
WHERE id = $1 AND is_active = TRUE
LIMIT 1;
`
	}

	var cr churchRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(cr.fields()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Church{}, domain.ErrChurchNotFound()
		}
		return domain.Church{}, domain.ErrDBUnavailable(err)
	}
	return toDomainChurch(cr), nil
}

func (r *ChurchRepo) Create(ctx context.Context, c domain.Church) (domain.Church, error) {
	if c.ID == "" {
		return domain.Church{}, domain.ErrMissingField("id")
	}
	if c.Name == "" {
		return domain.Church{}, domain.ErrMissingField("name")
	}

	q := `
INSERT INTO churches (` + churchColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
RETURNING ` + churchColumns + `;
`
	var cr churchRow
	err := r.db.QueryRowContext(ctx, q, churchArgs(c)...).Scan(cr.fields()...)
	if err != nil {
		return domain.Church{}, domain.ErrDBUnavailable(err)
	}
	return toDomainChurch(cr), nil
}

func (r *ChurchRepo) Update(ctx context.Context, c domain.Church) error {
	if c.ID == "" {
		return domain.ErrMissingField("id")
	}

	const q = `
UPDATE churches
SET name = $2, address = $3, city = $4, state = $5, zip_code = $6,
    phone = $7, email = $8, website = $9, denomination = $10,
    latitude = $11, longitude = $12, status = $13, description = $14,
    service_schedule = $15, updated_at = $16, updated_by = $17, is_active = $18
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.Address, c.City, c.State, c.ZipCode,
		c.Phone, c.Email, c.Website, c.Denomination,
		c.Latitude, c.Longitude, string(c.Status), c.Description,
		c.ServiceSchedule, c.UpdatedAt, c.UpdatedBy, c.IsActive,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrChurchNotFound()
	}
	return nil
}

// List builds the WHERE clause incrementally so each filter only appears when
// set. Pagination is plain OFFSET/LIMIT over the name-ascending order.
func (r *ChurchRepo) List(ctx context.Context, lq church.ListQuery) ([]domain.Church, error) {
	var sb strings.Builder
	sb.WriteString(`
SELECT ` + churchColumns + `
FROM churches
WHERE is_active = TRUE`)

	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if lq.Status != nil {
		sb.WriteString(" AND status = " + arg(string(*lq.Status)))
	}
	if lq.City != "" {
		sb.WriteString(" AND city ILIKE " + arg("%"+lq.City+"%"))
	}
	if lq.State != "" {
		sb.WriteString(" AND state ILIKE " + arg("%"+lq.State+"%"))
	}
	if lq.Denomination != "" {
		sb.WriteString(" AND denomination ILIKE " + arg("%"+lq.Denomination+"%"))
	}

	sb.WriteString(" ORDER BY name ASC")
	sb.WriteString(" OFFSET " + arg(lq.Offset))
	sb.WriteString(" LIMIT " + arg(lq.Limit))
	sb.WriteString(";")

	return r.queryChurches(ctx, sb.String(), args...)
}

func (r *ChurchRepo) SearchVerified(ctx context.Context, term string) ([]domain.Church, error) {
	q := `
SELECT ` + churchColumns + `
FROM churches
WHERE is_active = TRUE AND status = 'verified'`

	var args []any
	if term != "" {
		q += ` AND (name ILIKE $1 OR city ILIKE $1 OR state ILIKE $1 OR denomination ILIKE $1 OR description ILIKE $1)`
		args = append(args, "%"+term+"%")
	}
	q += `
ORDER BY name ASC;
`
	return r.queryChurches(ctx, q, args...)
}

func (r *ChurchRepo) queryChurches(ctx context.Context, q string, args ...any) ([]domain.Church, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Church
	for rows.Next() {
		var cr churchRow
		if err := rows.Scan(cr.fields()...); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomainChurch(cr))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func churchArgs(c domain.Church) []any {
	return []any{
		c.ID, c.Name, c.Address, c.City, c.State, c.ZipCode,
		c.Phone, c.Email, c.Website, c.Denomination,
		c.Latitude, c.Longitude, string(c.Status), c.Description,
		c.ServiceSchedule, c.CreatedAt, c.UpdatedAt, c.CreatedBy, c.UpdatedBy, c.IsActive,
	}
}

// ---------- church.ImportStore ----------

func (r *ChurchRepo) Begin(ctx context.Context) (church.ImportTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return &importTx{tx: tx}, nil
}

type importTx struct {
	tx *sql.Tx
}

func (t *importTx) FindByNameAddress(ctx context.Context, name, address string) (domain.Church, error) {
	const q = `
SELECT ` + churchColumns + `
FROM churches
WHERE name = $1 AND COALESCE(address, '') = $2
LIMIT 1;
`
	var cr churchRow
	err := t.tx.QueryRowContext(ctx, q, name, address).Scan(cr.fields()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Church{}, domain.ErrChurchNotFound()
		}
		return domain.Church{}, domain.ErrDBUnavailable(err)
	}
	return toDomainChurch(cr), nil
}

func (t *importTx) Insert(ctx context.Context, c domain.Church) error {
	q := `
INSERT INTO churches (` + churchColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20);
`
	if _, err := t.tx.ExecContext(ctx, q, churchArgs(c)...); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (t *importTx) UpdateContact(ctx context.Context, c domain.Church) error {
	const q = `
UPDATE churches
SET phone = $2, email = $3, website = $4, denomination = $5,
    updated_at = $6, updated_by = $7
WHERE id = $1;
`
	res, err := t.tx.ExecContext(ctx, q,
		c.ID, c.Phone, c.Email, c.Website, c.Denomination, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrChurchNotFound()
	}
	return nil
}

func (t *importTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (t *importTx) Rollback() error {
	err := t.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
