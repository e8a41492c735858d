package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type skillBody struct {
	Name        string `json:"name" validate:"required"`
	Proficiency *int   `json:"proficiency" validate:"omitempty,gte=0,lte=100"`
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, New().Validate(loginBody{Email: "a@x.com", Password: "secret"}))
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	err := New().Validate(loginBody{Email: "nope", Password: "123"})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	require.Equal(t, FieldError{Field: "email", Message: "email must be a valid email address"}, verr.Fields[0])
	require.Equal(t, FieldError{Field: "password", Message: "password must be at least 6 characters"}, verr.Fields[1])
	require.Contains(t, verr.Error(), "email must be a valid email address")
}

func TestValidate_NumericBounds(t *testing.T) {
	over := 101
	err := New().Validate(skillBody{Name: "Go", Proficiency: &over})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "proficiency", verr.Fields[0].Field)
	require.Equal(t, "proficiency must be less than or equal to 100", verr.Fields[0].Message)

	require.NoError(t, New().Validate(skillBody{Name: "Go"}))
}

func TestFail(t *testing.T) {
	err := Fail("slug", "slug is taken")
	require.Equal(t, "slug is taken", err.Error())
}
