package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	t.Run("implements error with its message", func(t *testing.T) {
		err := NewDomainError("SOME_CODE", "something happened")
		assert.Equal(t, "something happened", err.Error())
		assert.Equal(t, "SOME_CODE", err.Code)
	})

	t.Run("unwraps through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("handling request: %w", ErrNotFound)

		var domainErr *DomainError
		require.ErrorAs(t, wrapped, &domainErr)
		assert.Equal(t, ErrNotFound.Code, domainErr.Code)
		assert.True(t, errors.Is(wrapped, ErrNotFound))
	})
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStock("Rice", 20, 15, "kg")

	t.Run("carries full diagnostic context", func(t *testing.T) {
		assert.Equal(t, "Rice", err.ProductName)
		assert.Equal(t, 20, err.Requested)
		assert.Equal(t, 15, err.Available)
		assert.Equal(t, "kg", err.Unit)
	})

	t.Run("formats a readable message", func(t *testing.T) {
		assert.Equal(t, `insufficient stock for "Rice": requested 20 kg, available 15 kg`, err.Error())
	})

	t.Run("is distinguishable from DomainError", func(t *testing.T) {
		var domainErr *DomainError
		assert.False(t, errors.As(error(err), &domainErr))

		var stockErr *InsufficientStockError
		assert.True(t, errors.As(error(err), &stockErr))
	})
}
