package errors

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error is an API error carrying an HTTP status and field-keyed messages.
// Field "message" is used for errors that are not tied to a request field.
type Error struct {
	Status int
	Fields map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %v", e.Status, e.Fields)
}

// New creates an API error with a single field message.
func New(status int, field, message string) *Error {
	return &Error{
		Status: status,
		Fields: map[string][]string{field: {message}},
	}
}

var (
	// ErrUnauthorized is returned when the request carries no token or an
	// unknown token. Also used for failed logins so that "no such user" and
	// "wrong password" are indistinguishable.
	ErrUnauthorized = New(http.StatusUnauthorized, "message", "unauthorized")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = New(http.StatusUnauthorized, "message", "username or password wrong")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = New(http.StatusBadRequest, "username", "Username already registered")
	// ErrNotFound is returned for a missing resource and, deliberately with
	// the same body, for a resource owned by another user.
	ErrNotFound = New(http.StatusNotFound, "message", "not found")
)

// Envelope is the uniform error response body.
type Envelope struct {
	Errors map[string][]string `json:"errors"`
}

// ErrorHandler renders every error into the field-keyed envelope. Unknown
// errors become a generic 500 without leaking internal detail.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	fields := map[string][]string{"message": {"internal server error"}}

	switch e := err.(type) {
	case *Error:
		status = e.Status
		fields = e.Fields
	case validator.ValidationErrors:
		status = http.StatusBadRequest
		fields = translate(e)
	case *echo.HTTPError:
		status = e.Code
		if msg, ok := e.Message.(string); ok {
			fields = map[string][]string{"message": {msg}}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, Envelope{Errors: fields})
}

// translate maps validator failures to per-field message lists. Field names
// come from the json tag (set up by the router's CustomValidator).
func translate(errs validator.ValidationErrors) map[string][]string {
	fields := make(map[string][]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = append(fields[fe.Field()], messageFor(fe))
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}
