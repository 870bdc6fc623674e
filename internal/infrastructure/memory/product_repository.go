package memory

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s  *Store
	tx *journal
}

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products.get(p.ID); ok {
		return domain.ErrAlreadyExists
	}
	r.s.products.insert(p.ID, copyProduct(p))
	r.tx.record(func() { r.s.products.remove(p.ID) })
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products.get(id)
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products.order))
	r.s.products.each(func(p *entity.Product) bool {
		out = append(out, copyProduct(p))
		return true
	})
	return out, nil
}

// SearchByName busca productos cuyo nombre contenga alguna de las palabras de text
// (sin distinguir mayúsculas). Ordena por cantidad de palabras coincidentes.
func (r *ProductRepo) SearchByName(_ context.Context, text string, limit int) ([]*entity.Product, error) {
	terms := words(text)
	if len(terms) == 0 {
		return []*entity.Product{}, nil
	}
	type hit struct {
		p     *entity.Product
		score int
	}
	r.s.mu.RLock()
	var hits []hit
	r.s.products.each(func(p *entity.Product) bool {
		name := make(map[string]bool)
		for _, w := range words(p.Name) {
			name[w] = true
		}
		score := 0
		for _, t := range terms {
			if name[t] {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, hit{p: copyProduct(p), score: score})
		}
		return true
	})
	r.s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]*entity.Product, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.p)
	}
	return out, nil
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Update cambia nombre y precio conservando el stock vigente.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products.get(p.ID)
	if !ok {
		return domain.ErrNotFound
	}
	prev := copyProduct(cur)
	cur.Name, cur.Price, cur.UpdatedAt = p.Name, p.Price, p.UpdatedAt
	r.tx.record(func() {
		if cur, ok := r.s.products.get(prev.ID); ok {
			cur.Name, cur.Price, cur.UpdatedAt = prev.Name, prev.Price, prev.UpdatedAt
		}
	})
	return nil
}

func (r *ProductRepo) SetStock(_ context.Context, id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	delta := p.Stock - stock
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.tx.record(func() { r.addStock(id, delta) })
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.products.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	r.s.products.remove(id)
	r.tx.record(func() { r.s.products.insert(id, prev) })
	return nil
}

// DecrementStock descuenta qty si stock >= qty, bajo el mismo lock que la lectura.
func (r *ProductRepo) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products.get(id)
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now()
	r.tx.record(func() { r.addStock(id, qty) })
	return true, nil
}

func (r *ProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	p.UpdatedAt = time.Now()
	r.tx.record(func() { r.addStock(id, -qty) })
	return nil
}

// addStock revierte un movimiento por diferencia, respetando lo que otros escribieron
// mientras tanto. Requiere s.mu tomado.
func (r *ProductRepo) addStock(id string, delta int) {
	if p, ok := r.s.products.get(id); ok {
		p.Stock += delta
	}
}
