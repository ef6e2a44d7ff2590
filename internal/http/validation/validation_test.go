package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"min=3"`
	Address string `json:"Address" validate:"min=10"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(sample{Email: "a@b.co", Name: "Ann", Address: "12 Long Road"})
	assert.Nil(t, errs)
}

func TestStructReportsEveryField(t *testing.T) {
	errs := Struct(sample{Email: "nope", Name: "Al", Address: "short"})
	require.Len(t, errs, 3)

	byField := map[string]FieldError{}
	for _, fe := range errs {
		byField[fe.Field] = fe
	}
	assert.Equal(t, "email", byField["email"].Type)
	assert.Equal(t, "Must be at least 3 characters", byField["name"].Message)
	assert.Equal(t, "min", byField["Address"].Type)
}
