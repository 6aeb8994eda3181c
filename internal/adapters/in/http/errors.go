package http

import (
	"errors"
	"net/http"

	"pressing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf classifies a use case error. Only this layer looks at error kinds.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrTransitionNotAllowed),
		errors.Is(err, errs.ErrPaymentNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and their
// detail is not sent to the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	body := Error{Code: code, Message: err.Error()}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	var transitionErr *errs.TransitionNotAllowedError
	if errors.As(err, &transitionErr) && transitionErr.AllowedNext != "" {
		allowed := transitionErr.AllowedNext
		body.AllowedNextStatus = &allowed
	}

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		body.Message = "internal error"
	}

	return ctx.JSON(code, body)
}
