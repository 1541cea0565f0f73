package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/domain"
)

type ChurchRepo struct {
	mu       sync.RWMutex
	churches map[string]domain.Church // by id
}

func NewChurchRepo() *ChurchRepo {
	return &ChurchRepo{churches: map[string]domain.Church{}}
}

func (r *ChurchRepo) GetByID(ctx context.Context, id string, activeOnly bool) (domain.Church, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.churches[id]
	if !ok || (activeOnly && !c.IsActive) {
		return domain.Church{}, domain.ErrChurchNotFound()
	}
	return c, nil
}

func (r *ChurchRepo) Create(ctx context.Context, c domain.Church) (domain.Church, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.churches[c.ID] = c
	return c, nil
}

func (r *ChurchRepo) Update(ctx context.Context, c domain.Church) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.churches[c.ID]; !ok {
		return domain.ErrChurchNotFound()
	}
	r.churches[c.ID] = c
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (r *ChurchRepo) List(ctx context.Context, q church.ListQuery) ([]domain.Church, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Church
	for _, c := range r.churches {
		if !c.IsActive {
			continue
		}
		if q.Status != nil && c.Status != *q.Status {
			continue
		}
		if q.City != "" && !containsFold(c.City, q.City) {
			continue
		}
		if q.State != "" && !containsFold(c.State, q.State) {
			continue
		}
		if q.Denomination != "" && !containsFold(c.Denomination, q.Denomination) {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	if q.Offset >= len(matched) {
		return []domain.Church{}, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (r *ChurchRepo) SearchVerified(ctx context.Context, term string) ([]domain.Church, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Church
	for _, c := range r.churches {
		if !c.IsActive || c.Status != domain.StatusVerified {
			continue
		}
		if term != "" &&
			!containsFold(c.Name, term) &&
			!containsFold(c.City, term) &&
			!containsFold(c.State, term) &&
			!containsFold(c.Denomination, term) &&
			!containsFold(c.Description, term) {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

/*
ImportStore implementation. Staged rows apply to the base map only on Commit,
so an aborted batch leaves the repo untouched.
*/

func (r *ChurchRepo) Begin(ctx context.Context) (church.ImportTx, error) {
	return &importTx{repo: r, staged: map[string]domain.Church{}}, nil
}

type importTx struct {
	repo   *ChurchRepo
	staged map[string]domain.Church
	done   bool
}

func (tx *importTx) FindByNameAddress(ctx context.Context, name, address string) (domain.Church, error) {
	// Staged rows shadow the base map so a batch sees its own writes.
	for _, c := range tx.staged {
		if c.Name == name && c.Address == address {
			return c, nil
		}
	}

	tx.repo.mu.RLock()
	defer tx.repo.mu.RUnlock()

	for _, c := range tx.repo.churches {
		if c.Name == name && c.Address == address {
			return c, nil
		}
	}
	return domain.Church{}, domain.ErrChurchNotFound()
}

func (tx *importTx) Insert(ctx context.Context, c domain.Church) error {
	tx.staged[c.ID] = c
	return nil
}

func (tx *importTx) UpdateContact(ctx context.Context, c domain.Church) error {
	tx.staged[c.ID] = c
	return nil
}

func (tx *importTx) Commit() error {
	if tx.done {
		return nil
	}
	tx.done = true

	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()

	for id, c := range tx.staged {
		tx.repo.churches[id] = c
	}
	return nil
}

func (tx *importTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.staged = nil
	return nil
}
