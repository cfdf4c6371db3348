package lazy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/klwxsrx/go-web-auth/pkg/lazy"
)

func TestLoader_CallsProviderOnce(t *testing.T) {
	calls := 0
	loader := lazy.New(func() (int, error) {
		calls++
		return 42, nil
	})

	loaded := false
	loader.IfLoaded(func(int) { loaded = true })
	assert.False(t, loaded)

	assert.Equal(t, 42, loader.MustLoad())
	assert.Equal(t, 42, loader.MustLoad())
	assert.Equal(t, 1, calls)

	loader.IfLoaded(func(v int) { loaded = v == 42 })
	assert.True(t, loaded)
}

func TestLoader_MustLoadPanicsOnProviderError(t *testing.T) {
	loader := lazy.New(func() (string, error) {
		return "", errors.New("no config")
	})

	_, err := loader.Load()
	assert.Error(t, err)
	assert.Panics(t, func() { loader.MustLoad() })
}
