package graphql

import "context"

type callerKey struct{}

// WithCaller guarda el ID del usuario autenticado ("" si es anónimo).
func WithCaller(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// Caller devuelve el usuario autenticado del contexto.
func Caller(ctx context.Context) string {
	s, _ := ctx.Value(callerKey{}).(string)
	return s
}
