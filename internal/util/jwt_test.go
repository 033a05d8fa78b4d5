package util

import (
	"testing"
	"time"

	"lesson_qa_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret-test-secret-test-secret"

	token, err := GenerateJWT(42, "Dana", model.Instructor, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Dana", claims.Name)
	assert.Equal(t, model.Instructor, claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "Dana", model.Student, "secret-one", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-two")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateJWT(42, "Dana", model.Student, "secret-one", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-one")
	assert.Error(t, err)
}
