package validation_test

import (
	"encoding/json"
	"testing"

	"gudang/internal/apperrors"
	"gudang/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required,max=5"`
	Email    string `json:"email" validate:"required,email"`
	Quantity *int64 `json:"quantity" validate:"required,gte=0"`
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := validation.New()
	negative := int64(-1)

	err := v.Struct(sample{Name: "toolong", Email: "nope", Quantity: &negative})
	verr, ok := apperrors.IsValidation(err)
	require.True(t, ok)

	assert.Equal(t, "The name field must not be greater than 5 characters.", verr.Fields["name"])
	assert.Equal(t, "The email field must be a valid email address.", verr.Fields["email"])
	assert.Equal(t, "The quantity field must be at least 0.", verr.Fields["quantity"])
}

func TestValidator_RequiredPointerAcceptsZero(t *testing.T) {
	v := validation.New()
	zero := int64(0)

	assert.NoError(t, v.Struct(sample{Name: "ok", Email: "a@x.com", Quantity: &zero}))

	verr := v.Fields(sample{Name: "ok", Email: "a@x.com"})
	require.NotNil(t, verr)
	assert.Equal(t, "The quantity field is required.", verr.Fields["quantity"])
}

func TestFromDecodeError(t *testing.T) {
	var target sample

	err := json.Unmarshal([]byte(`{"quantity":"10"}`), &target)
	require.Error(t, err)
	verr := validation.FromDecodeError(err)
	assert.Equal(t, map[string]string{"quantity": "The quantity field must be an integer."}, verr.Fields)

	err = json.Unmarshal([]byte(`{"name":5}`), &target)
	require.Error(t, err)
	assert.Equal(t, "The name field must be a string.", validation.FromDecodeError(err).Fields["name"])

	err = json.Unmarshal([]byte(`{not json`), &target)
	require.Error(t, err)
	assert.Equal(t, "The request body must be a valid JSON object.", validation.FromDecodeError(err).Fields["body"])
}
