package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
)

type AppError interface {
	error
	Status() int
	Public() string
}

type ErrInternal struct {
	Message string
	Cause   error
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("internal error: %v", e.Cause)
}
func (e *ErrInternal) Unwrap() error { return e.Cause }
func (e *ErrInternal) Status() int   { return http.StatusInternalServerError }
func (e *ErrInternal) Public() string {
	if e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}

type ErrBadRequest struct {
	Motivation string
	Cause      error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %v", e.Cause)
}
func (e *ErrBadRequest) Unwrap() error { return e.Cause }
func (e *ErrBadRequest) Status() int   { return http.StatusBadRequest }
func (e *ErrBadRequest) Public() string {
	if e.Motivation != "" {
		return e.Motivation
	}
	return "Bad request"
}

type ErrNotFound struct {
	Thing string
	Cause error
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Thing, e.Cause)
}
func (e *ErrNotFound) Unwrap() error { return e.Cause }
func (e *ErrNotFound) Status() int   { return http.StatusNotFound }
func (e *ErrNotFound) Public() string {
	return fmt.Sprintf("The %s you are looking for doesn't exist", e.Thing)
}

type ErrForbidden struct {
	Cause error
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %v", e.Cause)
}
func (e *ErrForbidden) Unwrap() error { return e.Cause }
func (e *ErrForbidden) Status() int   { return http.StatusForbidden }
func (e *ErrForbidden) Public() string {
	return "You don't have the permission to do this"
}

// toAppError classifies err, keeping it if it's already an AppError.
func toAppError(err error) AppError {
	var appErr AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrNotFound):
		return &ErrNotFound{Thing: "report", Cause: err}
	case errors.Is(err, domain.ErrPermDenied):
		return &ErrForbidden{Cause: err}
	default:
		return &ErrInternal{Cause: err}
	}
}

func (routes *Routes) HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	appErr := toAppError(err)

	logEvent := hlog.FromRequest(r).Debug()
	if appErr.Status() >= http.StatusInternalServerError {
		logEvent = hlog.FromRequest(r).Error()
	}
	logEvent.
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("status", appErr.Status()).
		Err(appErr).
		Msg(appErr.Public())

	routes.tmpls.RenderHTMLStatus(w, appErr.Status(), "error", struct {
		Status  int
		Message string
	}{appErr.Status(), appErr.Public()})
}

func (routes *Routes) AppHandler(handler func(w http.ResponseWriter, r *http.Request) AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			routes.HandleErr(w, r, err)
		}
	}
}
