package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for NewBackend:
// - Every listed format has a backend
// - "md" and an empty name are accepted aliases
// - Unknown names fail with ErrUnknownFormat

func TestNewBackend(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		backend, err := NewBackend(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, backend.Extension())
	}

	md, err := NewBackend(" MD ")
	require.NoError(t, err)
	assert.Equal(t, ".md", md.Extension())

	def, err := NewBackend("")
	require.NoError(t, err)
	assert.Equal(t, ".docx", def.Extension())

	_, err = NewBackend("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
