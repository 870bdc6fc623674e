package graphql

import (
	"encoding/json"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// decimalScalar precios y totales. Sale como número JSON exacto; entra como número o string.
var decimalScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Monto decimal exacto (precio o total).",
	Serialize: func(value interface{}) interface{} {
		switch d := value.(type) {
		case decimal.Decimal:
			return json.Number(d.String())
		case *decimal.Decimal:
			if d == nil {
				return nil
			}
			return json.Number(d.String())
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		switch v := value.(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		case string:
			return parseDecimal(v)
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.IntValue:
			return parseDecimal(v.Value)
		case *ast.FloatValue:
			return parseDecimal(v.Value)
		case *ast.StringValue:
			return parseDecimal(v.Value)
		}
		return nil
	},
})

func parseDecimal(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return d
}

var orderStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "OrderStatus",
	Values: graphql.EnumValueConfigMap{
		"PENDING":   &graphql.EnumValueConfig{Value: "PENDING"},
		"COMPLETED": &graphql.EnumValueConfig{Value: "COMPLETED"},
		"CANCELED":  &graphql.EnumValueConfig{Value: "CANCELED"},
	},
})

// ──────────────────────────────────────────────────────────────────────────────
// Tipos de salida
// ──────────────────────────────────────────────────────────────────────────────

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.String},
		"lastName":  &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"token":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"expiresAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var tokenInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TokenInfo",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"issuedAt":  &graphql.Field{Type: graphql.DateTime},
		"expiresAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.String},
		"stock":     &graphql.Field{Type: graphql.Int},
		"price":     &graphql.Field{Type: decimalScalar},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var clientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Client",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.String},
		"lastName":  &graphql.Field{Type: graphql.String},
		"company":   &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"phone":     &graphql.Field{Type: graphql.String},
		"seller":    &graphql.Field{Type: graphql.ID},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var orderGroupType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderGroup",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"quantity": &graphql.Field{Type: graphql.Int},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"order":       &graphql.Field{Type: graphql.NewList(orderGroupType)},
		"total":       &graphql.Field{Type: decimalScalar},
		"client":      &graphql.Field{Type: graphql.ID},
		"salesPerson": &graphql.Field{Type: graphql.ID},
		"status":      &graphql.Field{Type: orderStatusEnum},
		"createdAt":   &graphql.Field{Type: graphql.DateTime},
		"updatedAt":   &graphql.Field{Type: graphql.DateTime},
	},
})

// client y salesPerson son listas de 0 o 1 elemento, como devolvía el lookup de la versión anterior.
var topClientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TopClient",
	Fields: graphql.Fields{
		"total":  &graphql.Field{Type: decimalScalar},
		"client": &graphql.Field{Type: graphql.NewList(clientType)},
	},
})

var topSalesPersonType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TopSalesPerson",
	Fields: graphql.Fields{
		"total":       &graphql.Field{Type: decimalScalar},
		"salesPerson": &graphql.Field{Type: graphql.NewList(userType)},
	},
})

// ──────────────────────────────────────────────────────────────────────────────
// Inputs
// ──────────────────────────────────────────────────────────────────────────────

func inputObject(name string, fields graphql.InputObjectConfigFieldMap) *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{Name: name, Fields: fields})
}

func field(t graphql.Input) *graphql.InputObjectFieldConfig {
	return &graphql.InputObjectFieldConfig{Type: t}
}

var (
	nonNullString = graphql.NewNonNull(graphql.String)
	nonNullID     = graphql.NewNonNull(graphql.ID)
)

var userInput = inputObject("UserInput", graphql.InputObjectConfigFieldMap{
	"name":     field(nonNullString),
	"lastName": field(nonNullString),
	"email":    field(nonNullString),
	"password": field(nonNullString),
})

var authInput = inputObject("AuthInput", graphql.InputObjectConfigFieldMap{
	"email":    field(nonNullString),
	"password": field(nonNullString),
})

var productInput = inputObject("ProductInput", graphql.InputObjectConfigFieldMap{
	"name":  field(nonNullString),
	"stock": field(graphql.NewNonNull(graphql.Int)),
	"price": field(graphql.NewNonNull(decimalScalar)),
})

var productUpdateInput = inputObject("ProductUpdateInput", graphql.InputObjectConfigFieldMap{
	"name":  field(graphql.String),
	"stock": field(graphql.Int),
	"price": field(decimalScalar),
})

var clientInput = inputObject("ClientInput", graphql.InputObjectConfigFieldMap{
	"name":     field(nonNullString),
	"lastName": field(nonNullString),
	"company":  field(nonNullString),
	"email":    field(nonNullString),
	"phone":    field(graphql.String),
})

var clientUpdateInput = inputObject("ClientUpdateInput", graphql.InputObjectConfigFieldMap{
	"name":     field(graphql.String),
	"lastName": field(graphql.String),
	"company":  field(graphql.String),
	"email":    field(graphql.String),
	"phone":    field(graphql.String),
})

var orderProductInput = inputObject("OrderProductInput", graphql.InputObjectConfigFieldMap{
	"id":       field(nonNullID),
	"quantity": field(graphql.NewNonNull(graphql.Int)),
})

// total se acepta por compatibilidad y se ignora: el servidor lo calcula.
var orderInput = inputObject("OrderInput", graphql.InputObjectConfigFieldMap{
	"client": field(nonNullID),
	"order":  field(graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderProductInput)))),
	"total":  field(decimalScalar),
	"status": field(orderStatusEnum),
})

var orderUpdateInput = inputObject("OrderUpdateInput", graphql.InputObjectConfigFieldMap{
	"client": field(graphql.ID),
	"order":  field(graphql.NewList(graphql.NewNonNull(orderProductInput))),
	"total":  field(decimalScalar),
	"status": field(orderStatusEnum),
})
