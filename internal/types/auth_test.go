package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError_IsMatchesByKind(t *testing.T) {
	assert.ErrorIs(t, ErrCouldNotValidate, ErrIncorrectCredentials)
	assert.ErrorIs(t, fmt.Errorf("resolve: %w", ErrCouldNotValidate), ErrIncorrectCredentials)
	assert.NotErrorIs(t, ErrInactiveUser, ErrIncorrectCredentials)
	assert.NotErrorIs(t, errors.New("Inactive user"), ErrInactiveUser)
}

func TestAuthError_StatusAndChallenge(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrIncorrectCredentials.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, ErrCouldNotValidate.StatusCode())
	assert.Equal(t, http.StatusBadRequest, ErrInactiveUser.StatusCode())

	assert.True(t, ErrCouldNotValidate.Challenge)
	assert.False(t, ErrInactiveUser.Challenge)
}

func TestUser_Active(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.Active())
	assert.True(t, (&User{}).Active())
	assert.False(t, (&User{Disabled: true}).Active())
}
