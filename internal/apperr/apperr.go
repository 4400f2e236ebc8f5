// Package apperr carries an error kind from the layer that knows what went
// wrong to the transport that has to answer for it.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
)

type Kind string

const (
	Invalid      Kind = "invalid"
	NotFound     Kind = "not_found"
	Unauthorized Kind = "unauthorized"
	Internal     Kind = "internal"
)

type AppError struct {
	Kind      Kind
	PublicMsg string // safe to show to the caller
	Err       error  // internal cause, logged only
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.PublicMsg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.PublicMsg)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

func InvalidErr(publicMsg string) *AppError {
	return &AppError{Kind: Invalid, PublicMsg: publicMsg}
}

func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}

func UnauthorizedErr(publicMsg string) *AppError {
	return &AppError{Kind: Unauthorized, PublicMsg: publicMsg}
}

// Wrap marks err as internal. The cause is kept for logs, never shown.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: Internal, PublicMsg: "internal error", Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Invalid:
			return http.StatusBadRequest
		case Unauthorized:
			return http.StatusUnauthorized
		case NotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

func GRPCCode(err error) codes.Code {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Invalid:
			return codes.InvalidArgument
		case Unauthorized:
			return codes.Unauthenticated
		case NotFound:
			return codes.NotFound
		}
	}
	return codes.Internal
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return "internal error"
}
