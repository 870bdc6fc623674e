// Package access contiene la regla de propiedad que protege clientes y pedidos.
// Es puro: no consulta almacenamiento; el caller carga la entidad y pasa su dueño.
package access

import "github.com/jhoicas/pedidos-api/internal/domain"

// Decision resultado de evaluar la propiedad.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// AuthorizeOwnership permite solo si hay caller y coincide con el dueño.
func AuthorizeOwnership(callerID, ownerID string) Decision {
	if callerID == "" || callerID != ownerID {
		return Denied
	}
	return Allowed
}

// RequireCaller falla con ErrUnauthorized si la petición es anónima.
func RequireCaller(callerID string) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// CheckOwnership combina RequireCaller y AuthorizeOwnership:
// anónimo -> ErrUnauthorized, otro usuario -> ErrForbidden.
func CheckOwnership(callerID, ownerID string) error {
	if err := RequireCaller(callerID); err != nil {
		return err
	}
	if AuthorizeOwnership(callerID, ownerID) == Denied {
		return domain.ErrForbidden
	}
	return nil
}
