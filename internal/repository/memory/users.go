package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/google/uuid"

	repo "github.com/baharkarakas/budget-backend/internal/repository"
)

type usersRepo struct{ s *Store }

func (r usersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.users {
		if other.Username == u.Username || strings.EqualFold(other.Email, u.Email) {
			return models.User{}, repo.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = u
	return u, nil
}

func (r usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r usersRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r usersRepo) find(match func(models.User) bool) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (r usersRepo) List(_ context.Context, p repo.Page) ([]models.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, p), len(out), nil
}
