package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/klwxsrx/go-web-auth/pkg/strings"
)

var ErrNotFound = errors.New("env not found")

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("parse environment: %w", err))
	}
	return val
}

func Parse[T strings.SupportedValueParsingTypes](key string) (T, error) {
	var result T
	str, ok := os.LookupEnv(key)
	if !ok || str == "" {
		return result, fmt.Errorf("%w: %s with type %T", ErrNotFound, key, result)
	}

	result, err := strings.ParseTypedValue[T](str)
	if err != nil {
		return result, fmt.Errorf("env %s has invalid value: %w", key, err)
	}

	return result, nil
}

// ParseOptional returns nil if the variable is not set.
func ParseOptional[T strings.SupportedPointerParsingTypes](key string) (T, error) {
	var result T
	str, ok := os.LookupEnv(key)
	if !ok || str == "" {
		return result, nil
	}

	result, err := strings.ParseTypedValue[T](str)
	if err != nil {
		return result, fmt.Errorf("env %s has invalid value: %w", key, err)
	}

	return result, nil
}

func ParseOrDefault[T strings.SupportedValueParsingTypes](key string, defaultValue T) (T, error) {
	result, err := Parse[T](key)
	if errors.Is(err, ErrNotFound) {
		return defaultValue, nil
	}

	return result, err
}
