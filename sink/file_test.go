package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	s, err := NewFileSink(path)
	require.NoError(t, err)

	// Truncated on open
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, b)

	for _, line := range []string{"3\n", "1\n", "2\n"} {
		require.NoError(t, s.Append([]byte(line)))
	}
	require.NoError(t, s.Flush())

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3\n1\n2\n", string(b))

	require.NoError(t, s.Append([]byte("4\n")))
	require.NoError(t, s.Close())

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3\n1\n2\n4\n", string(b))
}

func TestFileSinkBadPath(t *testing.T) {
	_, err := NewFileSink(filepath.Join(t.TempDir(), "missing", "numbers.log"))
	assert.Error(t, err)
}
