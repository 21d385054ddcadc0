package response

import (
	"ctchen222/Recipe-Box/internal/api/models"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds as they appear in response bodies.
const (
	KindMissingField       = "missing_field"
	KindDuplicateUsername  = "duplicate_username"
	KindValidation         = "validation_failure"
	KindInvalidCredentials = "invalid_credentials"
	KindUnauthorized       = "unauthorized"
	KindNotFound           = "not_found"
	KindBadRequest         = "bad_request"
	KindInternal           = "internal"
)

type Error struct {
	Code    int
	Kind    string
	Message string
}

func (e Error) Error() string {
	return e.Message
}

var kinds = []struct {
	err  error
	code int
	kind string
}{
	{models.ErrMissingField, http.StatusUnprocessableEntity, KindMissingField},
	{models.ErrDuplicateUsername, http.StatusUnprocessableEntity, KindDuplicateUsername},
	{models.ErrValidation, http.StatusUnprocessableEntity, KindValidation},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials},
	{models.ErrUnauthorized, http.StatusUnauthorized, KindUnauthorized},
	{models.ErrNotFound, http.StatusNotFound, KindNotFound},
}

// NewError maps a service error onto its HTTP representation. Errors of no
// known kind become a 500 whose message hides the cause.
func NewError(err error) Error {
	var fieldErr *models.FieldError
	for _, k := range kinds {
		if !errors.Is(err, k.err) {
			continue
		}
		message := k.err.Error()
		if errors.As(err, &fieldErr) {
			message = fieldErr.Message
		}
		return Error{Code: k.code, Kind: k.kind, Message: message}
	}
	return Error{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "internal server error"}
}

// Fail writes err as an error envelope.
func Fail(c *gin.Context, err error) {
	e := NewError(err)
	if e.Code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
	}
	ErrorResponse(c, e.Code, e.Kind, e.Message)
}

// BadRequest reports a body that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	ErrorResponse(c, http.StatusBadRequest, KindBadRequest, "malformed request body: "+err.Error())
}
