package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
)

// ReadCatalog lee un CSV con encabezado (name, price, stock en cualquier orden).
// charset "latin1"/"iso-8859-1" decodifica exportaciones de hojas de cálculo antiguas.
// Acepta ',' o ';' como separador y coma decimal en el precio.
func ReadCatalog(r io.Reader, charset string) ([]dto.CreateProductRequest, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectSeparator(text)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"name", "price", "stock"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("falta la columna %q", name)
		}
	}

	var out []dto.CreateProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		name := strings.TrimSpace(rec[col["name"]])
		if name == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[col["price"]]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[col["price"]])
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[col["stock"]]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[col["stock"]])
		}
		out = append(out, dto.CreateProductRequest{Name: name, Price: price, Stock: stock})
	}
	return out, nil
}

// detectSeparator elige ';' si la primera línea lo usa y no tiene comas.
func detectSeparator(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Contains(first, ";") && !strings.Contains(first, ",") {
		return ';'
	}
	return ','
}
