package church_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/domain"
)

// sliceSource replays records and errors in order, then io.EOF.
type sliceSource struct {
	items []sourceItem
	pos   int
}

type sourceItem struct {
	rec church.Record
	err error
}

func (s *sliceSource) Next() (church.Record, error) {
	if s.pos >= len(s.items) {
		return church.Record{}, io.EOF
	}
	it := s.items[s.pos]
	s.pos++
	return it.rec, it.err
}

func rec(name, address, phone string) sourceItem {
	return sourceItem{rec: church.Record{Name: name, Address: address, Phone: phone}}
}

func TestImportCSV_InsertsPendingChurches(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	src := &sliceSource{items: []sourceItem{
		rec("Grace Chapel", "1 Main St", "555-0100"),
		rec("First Light", "2 Oak Ave", "555-0200"),
	}}

	n, err := svc.ImportCSV(context.Background(), src, "curator@x.com")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := svc.List(context.Background(), church.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		require.Equal(t, domain.StatusPending, c.Status)
		require.Equal(t, "curator@x.com", c.CreatedBy)
		require.Equal(t, "curator@x.com", c.UpdatedBy)
	}
}

// Two records sharing (Name, Address) collapse into one stored church carrying
// the second record's contact fields.
func TestImportCSV_UpsertsByNameAndAddress(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	src := &sliceSource{items: []sourceItem{
		rec("Grace Chapel", "1 Main St", "555-0100"),
		rec("Grace Chapel", "1 Main St", "555-0999"),
	}}

	n, err := svc.ImportCSV(context.Background(), src, "curator@x.com")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := svc.List(context.Background(), church.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "555-0999", got[0].Phone)
}

func TestImportCSV_UpdatesExistingChurchContactOnly(t *testing.T) {
	t.Parallel()

	svc, repo := newSvc(t)
	seed(t, repo, domain.Church{
		Name: "Grace Chapel", Address: "1 Main St",
		City: "Austin", Phone: "old", Status: domain.StatusVerified, IsActive: true,
	})

	src := &sliceSource{items: []sourceItem{
		{rec: church.Record{Name: "Grace Chapel", Address: "1 Main St", City: "Dallas", Phone: "new"}},
	}}

	n, err := svc.ImportCSV(context.Background(), src, "curator@x.com")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := svc.List(context.Background(), church.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	// contact fields refreshed, the rest untouched
	require.Equal(t, "new", got[0].Phone)
	require.Equal(t, "Austin", got[0].City)
	require.Equal(t, domain.StatusVerified, got[0].Status)
	require.Equal(t, "curator@x.com", got[0].UpdatedBy)
}

func TestImportCSV_MalformedRowsAreSkipped(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	src := &sliceSource{items: []sourceItem{
		rec("Good One", "1 Main St", ""),
		{err: &church.RecordError{Line: 3, Err: errors.New("bad latitude")}},
		{rec: church.Record{Name: "", Address: "nameless"}}, // invalid record
		rec("Good Two", "2 Oak Ave", ""),
	}}

	n, err := svc.ImportCSV(context.Background(), src, "curator@x.com")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestImportCSV_StructuralFailureAbortsBatch(t *testing.T) {
	t.Parallel()

	svc, _ := newSvc(t)
	src := &sliceSource{items: []sourceItem{
		rec("Good One", "1 Main St", ""),
		{err: errors.New("stream truncated")},
	}}

	_, err := svc.ImportCSV(context.Background(), src, "curator@x.com")
	require.Error(t, err)
	require.True(t, domain.Is(err, "import_failed"))

	// nothing committed
	got, err := svc.List(context.Background(), church.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, got)
}
