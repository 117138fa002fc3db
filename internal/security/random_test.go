package security

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewKeyID(t *testing.T) {
	first, err := NewKeyID()
	require.NoError(t, err)
	second, err := NewKeyID()
	require.NoError(t, err)

	assert.Len(t, first, 24)
	assert.NotEqual(t, first, second, "идентификаторы не повторяются")
}
