package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create persiste un usuario. El email es único sin distinguir mayúsculas.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users.get(u.ID); ok {
		return domain.ErrAlreadyExists
	}
	if r.findByEmail(u.Email) != nil {
		return domain.ErrAlreadyExists
	}
	r.s.users.insert(u.ID, copyUser(u))
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users.get(id)
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

// GetByEmail devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u := r.findByEmail(email); u != nil {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) findByEmail(email string) *entity.User {
	var found *entity.User
	r.s.users.each(func(u *entity.User) bool {
		if strings.EqualFold(u.Email, email) {
			found = u
			return false
		}
		return true
	})
	return found
}
