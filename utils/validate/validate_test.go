package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email string `mapstructure:"email" validate:"required,email"`
	Name  string `mapstructure:"name" validate:"required"`
}

func TestStructParam(t *testing.T) {
	require.NoError(t, StructParam(signup{Email: "a@example.com", Name: "a"}))

	err := StructParam(signup{Email: "nope", Name: "a"})
	require.Error(t, err)
	fe, ok := err.(*FieldError)
	require.True(t, ok)
	assert.Equal(t, "email", fe.Field)
	assert.Contains(t, fe.Message, "email")
}

func TestStructParamNotStruct(t *testing.T) {
	assert.Panics(t, func() { _ = StructParam(42) })
}
