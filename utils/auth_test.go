package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTKeyRejectsEmptySecret(t *testing.T) {
	JwtKey = []byte("previous")

	err := InitJWTKey("")
	assert.Error(t, err)
	assert.Equal(t, []byte("previous"), JwtKey)
}

func TestInitJWTKeyInstallsSecret(t *testing.T) {
	require.NoError(t, InitJWTKey("test-secret"))

	token, err := GenerateJWT("6512bd43d9caa6e02c990b0a", "user")
	require.NoError(t, err)
	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
}

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT("6512bd43d9caa6e02c990b0a", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "6512bd43d9caa6e02c990b0a", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestParseJWTRejectsWrongKey(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT("6512bd43d9caa6e02c990b0a", "admin")
	require.NoError(t, err)

	JwtKey = []byte("another-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	JwtKey = []byte("test-secret")
	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
