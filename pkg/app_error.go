package pkg

import "fmt"

// AppError is the error shape returned by HTTP handlers.
//
// Code is a stable machine-readable identifier, Message is safe to show to
// clients and Err (optional) keeps the underlying cause for logs and details.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
	Extra      map[string]any
}

// HTTPError is the JSON body written for an AppError.
type HTTPError struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// WithExtra attaches additional top-level fields to the HTTP body.
func (e *AppError) WithExtra(key string, value any) *AppError {
	if e.Extra == nil {
		e.Extra = map[string]any{}
	}
	e.Extra[key] = value
	return e
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) ToHTTPError() HTTPError {
	out := HTTPError{Code: e.Code, Error: e.Message}
	if e.Err != nil {
		out.Details = e.Err.Error()
	}
	return out
}

// ToHTTPBody returns the HTTP error merged with Extra fields.
func (e *AppError) ToHTTPBody() map[string]any {
	h := e.ToHTTPError()
	body := map[string]any{
		"code":  h.Code,
		"error": h.Error,
	}
	if h.Details != "" {
		body["details"] = h.Details
	}
	for k, v := range e.Extra {
		body[k] = v
	}
	return body
}
