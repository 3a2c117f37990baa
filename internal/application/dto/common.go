package dto

// Envelope envoltura uniforme de las respuestas de la API.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK construye una respuesta exitosa.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMsg construye una respuesta exitosa con mensaje.
func OKMsg(data interface{}, msg string) Envelope {
	return Envelope{Success: true, Data: data, Message: msg}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Err construye un cuerpo de error.
func Err(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}
