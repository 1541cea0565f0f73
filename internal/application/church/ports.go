package church

import (
	"context"
	"fmt"

	"github.com/ekklesia/church-directory/internal/domain"
)

// ListQuery is the storage-level shape of a directory listing. The repo owns
// the "active records only" predicate; callers never repeat the flag check.
type ListQuery struct {
	Status       *domain.ChurchStatus
	City         string
	State        string
	Denomination string
	Offset       int
	Limit        int
}

/*
ChurchRepo
----------
Persistence port for church records. City/state/denomination filters are
case-insensitive substring matches; results come back ordered by name
ascending.
*/
type ChurchRepo interface {
	// GetByID fetches one record. With activeOnly, soft-deleted records are
	// treated as missing.
	GetByID(ctx context.Context, id string, activeOnly bool) (domain.Church, error)
	Create(ctx context.Context, c domain.Church) (domain.Church, error)
	Update(ctx context.Context, c domain.Church) error
	// List applies the active-only predicate plus the query filters.
	List(ctx context.Context, q ListQuery) ([]domain.Church, error)
	// SearchVerified returns active, verified records matching term as a
	// case-insensitive substring of name, city, state, denomination or
	// description. An empty term matches everything.
	SearchVerified(ctx context.Context, term string) ([]domain.Church, error)
}

/*
ImportStore / ImportTx
----------------------
Transactional port for bulk import. The whole batch commits atomically at the
end of the stream; per-record failures are skipped inside the transaction.
*/
type ImportStore interface {
	Begin(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	// FindByNameAddress matches exactly on (name, address), active or not.
	FindByNameAddress(ctx context.Context, name, address string) (domain.Church, error)
	Insert(ctx context.Context, c domain.Church) error
	// UpdateContact persists only the contact fields and audit columns of c.
	UpdateContact(ctx context.Context, c domain.Church) error
	Commit() error
	Rollback() error
}

// Record is one row from an external CSV record source.
type Record struct {
	Name         string
	Address      string
	City         string
	State        string
	ZipCode      string
	Phone        string
	Email        string
	Website      string
	Denomination string
	Latitude     *float64
	Longitude    *float64
	Description  string
}

/*
RecordSource
------------
Streaming source of import records. Next returns io.EOF at end of stream.
A *RecordError marks a single malformed row (skipped by the importer); any
other error is structural and aborts the batch.
*/
type RecordSource interface {
	Next() (Record, error)
}

type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record at line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
