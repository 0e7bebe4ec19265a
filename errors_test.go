package metagen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/metagen"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := metagen.NewNotFoundError("schema")
		assert.Equal(t, "metagen: schema not found", err.Error())
	})

	t.Run("ErrorWithKey", func(t *testing.T) {
		err := metagen.NewNotFoundErrorWithKey("schema", "cim v9")
		assert.Equal(t, "metagen: schema not found (cim v9)", err.Error())
		assert.Equal(t, "cim v9", err.Key())
		assert.Equal(t, "schema", err.Label())
	})

	t.Run("Is", func(t *testing.T) {
		err := metagen.NewNotFoundError("schema")
		assert.True(t, errors.Is(err, metagen.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := metagen.NewNotFoundError("schema")
		assert.True(t, metagen.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, metagen.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, metagen.IsNotFound(metagen.ErrNotFound))

		// Non-matching error
		assert.False(t, metagen.IsNotFound(errors.New("other error")))
		assert.False(t, metagen.IsNotFound(nil))
	})
}
