package lib

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"email":"crafter@happycrafts.shop","password":"longenough"}`))

	body, err := ExtractAndValidateBody[signupBody](r)
	require.NoError(t, err)
	assert.Equal(t, "crafter@happycrafts.shop", body.Email)
	assert.Equal(t, "longenough", body.Password)
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"email":"crafter@happycrafts.shop","password":"longenough","admin":true}`))

	_, err := ExtractAndValidateBody[signupBody](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"email":"not-an-email","password":"short"}`))

	_, err := ExtractAndValidateBody[signupBody](r)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors, 2)
	assert.Equal(t, "email", ve.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", ve.Errors[0].Message)
	assert.Equal(t, "password", ve.Errors[1].Field)
	assert.Equal(t, "must be at least 8", ve.Errors[1].Message)
}
