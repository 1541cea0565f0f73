package church

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/logger"
)

// ImportCSV upserts churches from a record stream, keyed by exact
// (name, address). Existing matches get their contact fields refreshed; new
// records become Pending churches created by the importer. Malformed rows are
// logged and skipped; a structural stream failure aborts and rolls back the
// whole batch. All changes commit together at end of stream.
//
// Returns the number of records processed (inserted or updated).
func (s *Service) ImportCSV(ctx context.Context, src RecordSource, importedBy string) (int, error) {
	tx, err := s.imports.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var re *RecordError
		if errors.As(err, &re) {
			logger.WithCtx(ctx).Warn().
				Int("line", re.Line).
				Err(re.Err).
				Msg("import_record_skipped")
			continue
		}
		if err != nil {
			// Structural read failure: the batch never commits.
			return 0, domain.ErrImportFailed(err)
		}

		if err := s.importRecord(ctx, tx, rec, importedBy); err != nil {
			logger.WithCtx(ctx).Warn().
				Str("name", rec.Name).
				Err(err).
				Msg("import_record_skipped")
			continue
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}

	logger.WithCtx(ctx).Info().
		Int("count", count).
		Str("imported_by", importedBy).
		Msg("churches_imported")
	return count, nil
}

func (s *Service) importRecord(ctx context.Context, tx ImportTx, rec Record, importedBy string) error {
	if rec.Name == "" {
		return domain.ErrMissingField("name")
	}

	now := s.now().UTC()

	existing, err := tx.FindByNameAddress(ctx, rec.Name, rec.Address)
	if err == nil {
		existing.Phone = rec.Phone
		existing.Email = rec.Email
		existing.Website = rec.Website
		existing.Denomination = rec.Denomination
		existing.UpdatedBy = importedBy
		existing.UpdatedAt = now
		return tx.UpdateContact(ctx, existing)
	}
	if !domain.Is(err, "church_not_found") {
		return err
	}

	return tx.Insert(ctx, domain.Church{
		ID:           uuid.NewString(),
		Name:         rec.Name,
		Address:      rec.Address,
		City:         rec.City,
		State:        rec.State,
		ZipCode:      rec.ZipCode,
		Phone:        rec.Phone,
		Email:        rec.Email,
		Website:      rec.Website,
		Denomination: rec.Denomination,
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Description:  rec.Description,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    importedBy,
		UpdatedBy:    importedBy,
		IsActive:     true,
	})
}
