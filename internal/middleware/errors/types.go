package errors

// APIError status code taşıyan custom error'lar için interface
type APIError interface {
	error
	Status() int
}

// ErrorResponse standardized error response formatı
type ErrorResponse struct {
	Success   bool                   `json:"success"`
	Error     string                 `json:"error"`
	Code      int                    `json:"code"`
	Timestamp string                 `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Stack     string                 `json:"stack,omitempty"` // Sadece development'ta
}

// AuthError authentication hatası için custom error type
type AuthError struct {
	Message    string
	StatusCode int
}

// Error AuthError'un error interface implementation'ı
func (e *AuthError) Error() string {
	return e.Message
}

// Status AuthError'un APIError interface implementation'ı
func (e *AuthError) Status() int {
	return e.StatusCode
}

// ValidationError validation hatası için custom error type
type ValidationError struct {
	Message    string
	StatusCode int
	Field      string
}

// Error ValidationError'un error interface implementation'ı
func (e *ValidationError) Error() string {
	return e.Message
}

// Status ValidationError'un APIError interface implementation'ı
func (e *ValidationError) Status() int {
	return e.StatusCode
}
