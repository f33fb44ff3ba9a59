package service

import (
	"context"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
)

// validate is shared by every handler; validator caches struct metadata.
var validate = validator.New()

// validationInterceptor rejects requests whose message fails its struct tags.
func validationInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if err := validate.Struct(req.Any()); err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			return next(ctx, req)
		}
	}
}
