package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog_UTF8(t *testing.T) {
	in := "name,price,stock\nLaptop,1000.50,5\n,1,1\nMouse,20,10\n"
	rows, err := ReadCatalog(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, rows, 2, "las filas sin nombre se saltan")
	assert.Equal(t, "Laptop", rows[0].Name)
	assert.True(t, decimal.RequireFromString("1000.5").Equal(rows[0].Price))
	assert.Equal(t, 10, rows[1].Stock)
}

func TestReadCatalog_Latin1PuntoYComa(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("stock;name;price\n3;Cañón;12,5\n")
	require.NoError(t, err)

	rows, err := ReadCatalog(bytes.NewReader([]byte(encoded)), "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cañón", rows[0].Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(rows[0].Price))
	assert.Equal(t, 3, rows[0].Stock)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader("name,price\nA,1\n"), "")
	assert.ErrorContains(t, err, "stock")

	_, err = ReadCatalog(strings.NewReader("name,price,stock\nA,x,1\n"), "")
	assert.ErrorContains(t, err, "línea 2")

	_, err = ReadCatalog(strings.NewReader("name,price,stock\n"), "ebcdic")
	assert.Error(t, err)
}
