// Package memory implementa los repositorios sobre un almacén en proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo, demos) y en los tests de las capas superiores.
package memory

import (
	"sync"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// table guarda filas por ID conservando el orden de inserción.
type table[T any] struct {
	order []string
	rows  map[string]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// each recorre las filas en orden de inserción hasta que fn devuelva false.
func (t *table[T]) each(fn func(T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

// Store estado compartido por todos los repositorios en memoria.
// Se crea en main y se inyecta en cada repositorio; no hay estado global.
type Store struct {
	mu sync.RWMutex
	// txMu serializa las transacciones (TxRunner). Las lecturas con bloqueo se hacen dentro.
	txMu sync.Mutex

	users    table[*entity.User]
	products table[*entity.Product]
	clients  table[*entity.Client]
	orders   table[*entity.Order]
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    newTable[*entity.User](),
		products: newTable[*entity.Product](),
		clients:  newTable[*entity.Client](),
		orders:   newTable[*entity.Order](),
	}
}

// Close no libera nada; existe para que main trate igual a todos los drivers.
func (s *Store) Close() {}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyClient(cl *entity.Client) *entity.Client {
	c := *cl
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}
