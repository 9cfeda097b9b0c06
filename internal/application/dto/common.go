package dto

// Valores del campo status del sobre de respuesta.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Pagination metadatos de página (page 1-based).
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// SuccessResponse sobre uniforme de éxito.
type SuccessResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse sobre uniforme de error.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError construye un ErrorResponse con status "error".
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Code: code, Message: message}
}
