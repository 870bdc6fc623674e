// Package graphql expone las operaciones con nombre (queries y mutations) sobre graphql-go.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Deps casos de uso que resuelven las operaciones.
type Deps struct {
	Auth     *auth.AuthUseCase
	Products *usecase.ProductUseCase
	Clients  *usecase.ClientUseCase
	Orders   *usecase.OrderUseCase
	Reports  *usecase.ReportUseCase
	Log      *logger.Logger
}

type resolver struct {
	Deps
}

// NewSchema arma el schema con todas las operaciones.
func NewSchema(deps Deps) (graphql.Schema, error) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	r := &resolver{Deps: deps}
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.query(),
		Mutation: r.mutation(),
	})
}

// wrap traduce los errores de dominio de cada resolver a errores con código.
func (r *resolver) wrap(op string, fn func(p graphql.ResolveParams) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err != nil {
			return nil, toAPIError(r.Log, op, err)
		}
		return out, nil
	}
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNullID}}
}

func inputArg(t graphql.Input) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}}
}

func idInputArgs(t graphql.Input) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id":    &graphql.ArgumentConfig{Type: nonNullID},
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)},
	}
}

func argID(p graphql.ResolveParams) string {
	id, _ := p.Args["id"].(string)
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────────────────────────

func (r *resolver) query() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAuthUser": &graphql.Field{
				Type: tokenInfoType,
				Args: graphql.FieldConfigArgument{"token": &graphql.ArgumentConfig{Type: nonNullString}},
				Resolve: r.wrap("getAuthUser", func(p graphql.ResolveParams) (interface{}, error) {
					token, _ := p.Args["token"].(string)
					info, err := r.Auth.VerifyToken(token)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"id": info.ID, "issuedAt": info.IssuedAt, "expiresAt": info.ExpiresAt}, nil
				}),
			},
			"getProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: r.wrap("getProducts", func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.Products.List(p.Context)
					if err != nil {
						return nil, err
					}
					return productsOut(list), nil
				}),
			},
			"getProductByID": &graphql.Field{
				Type: productType,
				Args: idArg(),
				Resolve: r.wrap("getProductByID", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Products.GetByID(p.Context, argID(p))
					if err != nil {
						return nil, err
					}
					return productOut(out), nil
				}),
			},
			"getClients":              r.clientsBySeller("getClients"),
			"getClientsBySalesPerson": r.clientsBySeller("getClientsBySalesPerson"),
			"getClientByID": &graphql.Field{
				Type: clientType,
				Args: idArg(),
				Resolve: r.wrap("getClientByID", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Clients.GetByID(p.Context, Caller(p.Context), argID(p))
					if err != nil {
						return nil, err
					}
					return clientOut(out), nil
				}),
			},
			"getOrders":              r.ordersBySeller("getOrders"),
			"getOrdersBySalesPerson": r.ordersBySeller("getOrdersBySalesPerson"),
			"getOrderByID": &graphql.Field{
				Type: orderType,
				Args: idArg(),
				Resolve: r.wrap("getOrderByID", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Orders.GetByID(p.Context, Caller(p.Context), argID(p))
					if err != nil {
						return nil, err
					}
					return orderOut(out), nil
				}),
			},
			"getOrdersByStatus": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderStatusEnum)}},
				Resolve: r.wrap("getOrdersByStatus", func(p graphql.ResolveParams) (interface{}, error) {
					status, _ := p.Args["status"].(string)
					list, err := r.Orders.ListByStatus(p.Context, Caller(p.Context), status)
					if err != nil {
						return nil, err
					}
					return ordersOut(list), nil
				}),
			},
			"getTopClients": &graphql.Field{
				Type: graphql.NewList(topClientType),
				Resolve: r.wrap("getTopClients", func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.Reports.TopClients(p.Context, usecase.DefaultTopClients)
					if err != nil {
						return nil, err
					}
					return topClientsOut(list), nil
				}),
			},
			"getTopSalesPerson": &graphql.Field{
				Type: graphql.NewList(topSalesPersonType),
				Resolve: r.wrap("getTopSalesPerson", func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.Reports.TopSalesPersons(p.Context, usecase.DefaultTopSalesPersons)
					if err != nil {
						return nil, err
					}
					return topSalesPersonsOut(list), nil
				}),
			},
			"searchProductByName": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{"text": &graphql.ArgumentConfig{Type: nonNullString}},
				Resolve: r.wrap("searchProductByName", func(p graphql.ResolveParams) (interface{}, error) {
					text, _ := p.Args["text"].(string)
					list, err := r.Reports.SearchProductsByName(p.Context, text, usecase.DefaultSearchLimit)
					if err != nil {
						return nil, err
					}
					return productsOut(list), nil
				}),
			},
		},
	})
}

// getClients y getClientsBySalesPerson devuelven lo mismo: los clientes de quien llama.
func (r *resolver) clientsBySeller(op string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(clientType),
		Resolve: r.wrap(op, func(p graphql.ResolveParams) (interface{}, error) {
			list, err := r.Clients.ListBySeller(p.Context, Caller(p.Context))
			if err != nil {
				return nil, err
			}
			return clientsOut(list), nil
		}),
	}
}

func (r *resolver) ordersBySeller(op string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(orderType),
		Resolve: r.wrap(op, func(p graphql.ResolveParams) (interface{}, error) {
			list, err := r.Orders.ListBySeller(p.Context, Caller(p.Context))
			if err != nil {
				return nil, err
			}
			return ordersOut(list), nil
		}),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutations
// ──────────────────────────────────────────────────────────────────────────────

func (r *resolver) mutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addNewUser": &graphql.Field{
				Type: userType,
				Args: inputArg(userInput),
				Resolve: r.wrap("addNewUser", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Auth.RegisterUser(p.Context, toRegisterRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return userOut(out), nil
				}),
			},
			"authUser": &graphql.Field{
				Type: tokenType,
				Args: inputArg(authInput),
				Resolve: r.wrap("authUser", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Auth.Login(p.Context, toLoginRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"token": out.Token, "expiresAt": out.ExpiresAt}, nil
				}),
			},
			"addNewProduct": &graphql.Field{
				Type: productType,
				Args: inputArg(productInput),
				Resolve: r.wrap("addNewProduct", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Products.Create(p.Context, Caller(p.Context), toCreateProductRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return productOut(out), nil
				}),
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: idInputArgs(productUpdateInput),
				Resolve: r.wrap("updateProduct", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Products.Update(p.Context, Caller(p.Context), argID(p), toUpdateProductRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return productOut(out), nil
				}),
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.String,
				Args: idArg(),
				Resolve: r.wrap("deleteProduct", func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Products.Delete(p.Context, Caller(p.Context), argID(p)); err != nil {
						return nil, err
					}
					return "Product Deleted", nil
				}),
			},
			"addClient": &graphql.Field{
				Type: clientType,
				Args: inputArg(clientInput),
				Resolve: r.wrap("addClient", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Clients.Create(p.Context, Caller(p.Context), toCreateClientRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return clientOut(out), nil
				}),
			},
			"updateClient": &graphql.Field{
				Type: clientType,
				Args: idInputArgs(clientUpdateInput),
				Resolve: r.wrap("updateClient", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Clients.Update(p.Context, Caller(p.Context), argID(p), toUpdateClientRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return clientOut(out), nil
				}),
			},
			"deleteClient": &graphql.Field{
				Type: graphql.String,
				Args: idArg(),
				Resolve: r.wrap("deleteClient", func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Clients.Delete(p.Context, Caller(p.Context), argID(p)); err != nil {
						return nil, err
					}
					return "Client Deleted", nil
				}),
			},
			"newOrder": &graphql.Field{
				Type: orderType,
				Args: inputArg(orderInput),
				Resolve: r.wrap("newOrder", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Orders.Create(p.Context, Caller(p.Context), toCreateOrderRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return orderOut(out), nil
				}),
			},
			"updateOrder": &graphql.Field{
				Type: orderType,
				Args: idInputArgs(orderUpdateInput),
				Resolve: r.wrap("updateOrder", func(p graphql.ResolveParams) (interface{}, error) {
					out, err := r.Orders.Update(p.Context, Caller(p.Context), argID(p), toUpdateOrderRequest(inputMap(p.Args)))
					if err != nil {
						return nil, err
					}
					return orderOut(out), nil
				}),
			},
			"deleteOrder": &graphql.Field{
				Type: graphql.String,
				Args: idArg(),
				Resolve: r.wrap("deleteOrder", func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.Orders.Delete(p.Context, Caller(p.Context), argID(p)); err != nil {
						return nil, err
					}
					return "Order Deleted", nil
				}),
			},
		},
	})
}
