package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria de ClientRepository.
type ClientRepo struct {
	s *Store
}

// NewClientRepository construye el repositorio.
func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{s: s}
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients.get(c.ID); ok {
		return domain.ErrAlreadyExists
	}
	if r.emailTaken(c.Email, "") {
		return domain.ErrAlreadyExists
	}
	r.s.clients.insert(c.ID, copyClient(c))
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients.get(id)
	if !ok {
		return nil, nil
	}
	return copyClient(c), nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *entity.Client
	r.s.clients.each(func(c *entity.Client) bool {
		if strings.EqualFold(c.Email, email) {
			found = copyClient(c)
			return false
		}
		return true
	})
	return found, nil
}

func (r *ClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Client{}
	r.s.clients.each(func(c *entity.Client) bool {
		if f.SellerID == "" || c.SellerID == f.SellerID {
			out = append(out, copyClient(c))
		}
		return true
	})
	return out, nil
}

// Update devuelve ErrAlreadyExists si el nuevo email pertenece a otro cliente.
func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients.get(c.ID); !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(c.Email, c.ID) {
		return domain.ErrAlreadyExists
	}
	r.s.clients.insert(c.ID, copyClient(c))
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.clients.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) emailTaken(email, exceptID string) bool {
	taken := false
	r.s.clients.each(func(c *entity.Client) bool {
		if c.ID != exceptID && strings.EqualFold(c.Email, email) {
			taken = true
			return false
		}
		return true
	})
	return taken
}
