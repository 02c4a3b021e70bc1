package utils

// CustomError is an error carrying the HTTP status it should be reported with
type CustomError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *CustomError) Error() string {
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError builds a CustomError with a user-facing message
func NewCustomError(statusCode int, message string) *CustomError {
	return &CustomError{StatusCode: statusCode, Message: message}
}

// WrapCustomError keeps the underlying cause for logging while exposing only message
func WrapCustomError(statusCode int, message string, err error) *CustomError {
	return &CustomError{StatusCode: statusCode, Message: message, Err: err}
}
