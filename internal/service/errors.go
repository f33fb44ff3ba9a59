package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/expenses/internal/storage"
)

// ErrIllegalTransition is returned when a report status change is not in
// the lifecycle table.
var ErrIllegalTransition = errors.New("illegal status transition")

// codeOf maps store and service errors to Connect codes.
func codeOf(err error) connect.Code {
	var invalid validator.ValidationErrors
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrConflict):
		return connect.CodeAborted
	case errors.Is(err, storage.ErrDuplicateKey):
		return connect.CodeAlreadyExists
	case errors.Is(err, ErrIllegalTransition):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrTypeMismatch),
		errors.Is(err, storage.ErrInvalidReference),
		errors.Is(err, storage.ErrUnknownIndex),
		errors.Is(err, storage.ErrInvalidKey),
		errors.Is(err, errInvalidRecord),
		errors.As(err, &invalid):
		return connect.CodeInvalidArgument
	}
	return connect.CodeInternal
}

func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), err)
}
