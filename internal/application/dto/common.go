package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin entidad (p. ej. eliminaciones).
type MessageResponse struct {
	Message string `json:"message"`
}
