package errx_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/Abraxas-365/filex/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := errx.NewRegistry("TEST")
	code := reg.Register("MISSING", errx.TypeNotFound, "thing is missing")

	t.Run("prefixes codes", func(t *testing.T) {
		assert.Equal(t, errx.Code("TEST_MISSING"), code)
	})

	t.Run("new returns independent copies", func(t *testing.T) {
		a := reg.New(code).WithDetail("path", "a")
		b := reg.New(code)

		assert.Equal(t, "a", a.Details["path"])
		assert.Nil(t, b.Details)
		assert.Equal(t, errx.TypeNotFound, b.Type)
	})

	t.Run("unknown code falls back to internal", func(t *testing.T) {
		err := reg.New("NOPE")
		assert.Equal(t, errx.TypeInternal, err.Type)
	})

	t.Run("custom message", func(t *testing.T) {
		err := reg.NewWithMessage(code, "other")
		assert.Equal(t, "other", err.Message)
		assert.True(t, errx.IsCode(err, code))
	})
}

func TestCauseChain(t *testing.T) {
	reg := errx.NewRegistry("TEST")
	code := reg.Register("IO", errx.TypeSystem, "io failed")

	err := reg.NewWithCause(code, fs.ErrNotExist)

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, errors.Is(err, reg.New(code)))
	assert.True(t, errx.IsType(err, errx.TypeSystem))
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, errx.Wrap(nil, "msg", errx.TypeInternal))
	})

	t.Run("plain error gets a type code", func(t *testing.T) {
		err := errx.Wrap(errors.New("boom"), "failed", errx.TypeSystem)
		require.NotNil(t, err)
		assert.Equal(t, errx.Code("SYSTEM_ERROR"), err.Code)
	})

	t.Run("keeps code of wrapped Error", func(t *testing.T) {
		inner := errx.NewRegistry("X").New("UNKNOWN")
		inner.Code = "X_INNER"
		err := errx.Wrap(inner, "outer", errx.TypeConflict)
		assert.True(t, errx.IsCode(err, "X_INNER"))
		assert.True(t, errx.IsType(err, errx.TypeConflict))
	})
}

func TestPrint(t *testing.T) {
	assert.Equal(t, "nil", errx.Print(nil))
	assert.Equal(t, "Error: plain", errx.Print(errors.New("plain")))

	err := errx.New("bad", errx.TypeValidation).
		WithDetail("b", 2).
		WithDetail("a", 1)
	assert.Equal(t, "Error: [VALIDATION] VALIDATION_ERROR: bad, Details: {a: 1, b: 2}", errx.Print(err))
}
