package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		verr := NewValidationError()
		assert.False(t, verr.HasErrors())
		assert.Equal(t, "The given data was invalid.", verr.Message())
	})

	t.Run("single error", func(t *testing.T) {
		verr := NewValidationError().Add("action", "The selected action is invalid.")
		assert.True(t, verr.HasErrors())
		assert.Equal(t, "The selected action is invalid.", verr.Error())
	})

	t.Run("multiple errors keep field order", func(t *testing.T) {
		verr := NewValidationError().
			Add("swiped_id", "The swiped id field is required.").
			Add("action", "The action field is required.").
			Add("action", "The selected action is invalid.")

		assert.Equal(t, "The swiped id field is required. (and 2 more errors)", verr.Message())
		assert.Len(t, verr.Errors["action"], 2)
	})

	t.Run("unwraps to sentinel", func(t *testing.T) {
		var err error = NewValidationError().Add("email", "bad")
		wrapped := fmt.Errorf("login: %w", err)

		assert.True(t, errors.Is(wrapped, ErrValidation))

		var verr *ValidationError
		assert.True(t, errors.As(wrapped, &verr))
		assert.Equal(t, []string{"bad"}, verr.Errors["email"])
	})
}
