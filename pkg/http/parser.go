package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/klwxsrx/go-web-auth/pkg/strings"
)

type (
	DataExtractor[T any] func(*http.Request) (T, error)

	supportedParsingTypes interface {
		strings.SupportedValueParsingTypes | strings.SupportedPointerParsingTypes
	}
)

var ErrParsingError = errors.New("parsing error")

func ParseRequest[T any](r *http.Request, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var result T
		return result, lastErr
	}

	return extractor(r)
}

func ParseRequestOptional[T any](r *http.Request, extractor DataExtractor[T], lastErr error) *T {
	if lastErr != nil {
		return nil
	}

	result, err := extractor(r)
	if err != nil {
		return nil
	}

	return &result
}

func Header[T supportedParsingTypes](key string) DataExtractor[T] {
	return func(r *http.Request) (T, error) {
		header := r.Header.Get(key)
		if header == "" {
			var result T
			return result, fmt.Errorf("%w: header with key %s not found", ErrParsingError, key)
		}

		return parseTypedValueImpl[T](header)
	}
}

func CookieValue[T supportedParsingTypes](name string) DataExtractor[T] {
	return func(r *http.Request) (T, error) {
		cookie, err := r.Cookie(name)
		if err != nil || cookie.Value == "" {
			var result T
			return result, fmt.Errorf("%w: cookie with name %s not found", ErrParsingError, name)
		}

		return parseTypedValueImpl[T](cookie.Value)
	}
}

// PostForm returns the url-encoded body parameters, missing keys are left to the caller.
func PostForm() DataExtractor[url.Values] {
	return func(r *http.Request) (url.Values, error) {
		err := r.ParseForm()
		if err != nil {
			return nil, fmt.Errorf("%w: parse form: %w", ErrParsingError, err)
		}

		return r.PostForm, nil
	}
}

func parseTypedValueImpl[T supportedParsingTypes](value string) (T, error) {
	v, err := strings.ParseTypedValue[T](value)
	if err == nil {
		return v, nil
	}

	return v, fmt.Errorf("%w: %w", ErrParsingError, err)
}
