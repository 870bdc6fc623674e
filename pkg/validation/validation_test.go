package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/pkg/validation"
)

type item struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type pedido struct {
	ClientID string `json:"client_id" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Items    []item `json:"items" validate:"required,min=1,dive"`
	Status   string `json:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELED"`
}

func TestStruct_Valido(t *testing.T) {
	in := pedido{ClientID: "c1", Items: []item{{ProductID: "p1", Quantity: 2}}}
	assert.NoError(t, validation.Struct(in))
}

func TestStruct_ErroresUsanNombreJSON(t *testing.T) {
	in := pedido{Email: "no-email", Items: []item{{ProductID: "p1", Quantity: 0}}, Status: "X"}

	err := validation.Struct(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "client_id es requerido")
	assert.Contains(t, err.Error(), "email no es un email válido")
	assert.Contains(t, err.Error(), "items[0].quantity debe ser mayor que 0")
	assert.Contains(t, err.Error(), "status debe ser uno de")
}

func TestStruct_ItemsVacios(t *testing.T) {
	err := validation.Struct(pedido{ClientID: "c1", Items: []item{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "items")
}
