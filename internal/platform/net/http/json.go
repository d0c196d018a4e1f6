package http

import (
	"net/http"

	"sellerbot/internal/platform/net/http/bind"
)

func reply(status int, out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	return Response{Status: status, Body: out}
}

// JSONHandler decodes and validates a T body before calling fn; fn's result
// is sent in the envelope with status
func JSONHandler[T any](fn func(*http.Request, T) (any, error), status int) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		return reply(status, out, err)
	})
}

// JSONHandlerNoBody is JSONHandler for reads, always 200 on success
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		return reply(http.StatusOK, out, err)
	})
}
