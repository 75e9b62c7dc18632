package web

import "fmt"

// APIError is returned by handlers for failures the client should see; it is
// rendered as {"error", "data", "message"}.
type APIError struct {
	Err     string `json:"error"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

func NewAPIError(err, data, message string) *APIError {
	return &APIError{Err: err, Data: data, Message: message}
}

// APIValueError reports an invalid input value for field.
func APIValueError(field, message string) *APIError {
	return NewAPIError("value:invalid", field, message)
}

func APIResourceNotFoundError(field, message string) *APIError {
	return NewAPIError("value:notfound", field, message)
}

func APIPermissionError(message string) *APIError {
	return NewAPIError("permission:forbidden", "permission", message)
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Err, e.Data, e.Message)
}

func (e *APIError) Dict() map[string]interface{} {
	return map[string]interface{}{
		"error":   e.Err,
		"data":    e.Data,
		"message": e.Message,
	}
}
