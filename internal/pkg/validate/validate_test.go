package validate_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-backend/internal/pkg/validate"
)

type commentBody struct {
	Text string `json:"text" binding:"required,notblank"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	validate.Configure(v)
	return v
}

func TestNotBlank(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(commentBody{Text: "great drill"}))

	err := v.Struct(commentBody{Text: "   "})
	require.Error(t, err)

	var ve validator.ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "text", ve[0].Field())
	assert.Equal(t, "notblank", ve[0].Tag())
}

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		validate.Register()
		validate.Register()
	})
}
