package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type form struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required,min=2"`
	}

	t.Run("valid input passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidateStruct(&form{Email: "a@example.com", Name: "Ada"}))
	})

	t.Run("failures surface as a 422 problem with field messages", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&form{Email: "nope", Name: "x"})
		require.Error(t, err)

		verr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, 422, verr.ProblemStatus())
		assert.Equal(t, "ErrValidation", verr.ProblemCode())

		ctx := verr.ProblemContext().(map[string]any)
		fields := ctx["fields"].(FieldErrors)
		assert.Contains(t, fields["email"], "must be a valid email")
		assert.Contains(t, fields["name"], "must be at least 2 characters")
	})
}
