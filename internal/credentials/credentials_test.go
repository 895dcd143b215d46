package credentials_test

import (
	"testing"

	"storefront/internal/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPlaintext(t *testing.T) {
	var scheme credentials.Plaintext

	stored, err := scheme.Encode("secret1")
	require.NoError(t, err)
	assert.Equal(t, "secret1", stored)

	assert.True(t, scheme.Verify(stored, "secret1"))
	assert.False(t, scheme.Verify(stored, "Secret1"))
	assert.False(t, scheme.Verify(stored, "secret"))
	assert.False(t, scheme.Verify(stored, ""))
}

func TestBcrypt(t *testing.T) {
	scheme := credentials.Bcrypt{Cost: bcrypt.MinCost}

	stored, err := scheme.Encode("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored)

	assert.True(t, scheme.Verify(stored, "secret1"))
	assert.False(t, scheme.Verify(stored, "wrong"))
}

func TestNew(t *testing.T) {
	scheme, err := credentials.New("plaintext")
	require.NoError(t, err)
	assert.IsType(t, credentials.Plaintext{}, scheme)

	scheme, err = credentials.New("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, credentials.Bcrypt{}, scheme)

	_, err = credentials.New("md5")
	assert.Error(t, err)
}
