// Package memory holds map-backed repositories. They mirror the postgres
// semantics exactly and back the test harness.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ekklesia/church-directory/internal/domain"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User // by id
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]domain.User{}}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string, activeOnly bool) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email != email {
			continue
		}
		if activeOnly && !u.IsActive {
			break
		}
		return u, nil
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// unique email, regardless of active state
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound()
	}
	r.users[u.ID] = u
	return nil
}

func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
