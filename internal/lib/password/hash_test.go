package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("Abc12345")
	require.NoError(t, err)
	assert.NotEqual(t, "Abc12345", hash)

	assert.NoError(t, CompareHash(hash, "Abc12345"))
	assert.Error(t, CompareHash(hash, "Abc12346"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := GetHash("Abc12345")
	require.NoError(t, err)
	second, err := GetHash("Abc12345")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
