// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("hello"), 0640))

	_, err := Copy(&CopyInput{
		FileSystem:  fs,
		Source:      "/src/a.txt",
		Destination: "/dst/sub/a.txt",
	})
	assert.Error(t, err)

	written, err := Copy(&CopyInput{
		FileSystem:  fs,
		Source:      "/src/a.txt",
		Destination: "/dst/sub/a.txt",
		Parents:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)

	b, err := afero.ReadFile(fs, "/dst/sub/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	// overwriting a longer file truncates it
	require.NoError(t, afero.WriteFile(fs, "/dst/sub/b.txt", []byte("a much longer file"), 0644))
	_, err = Copy(&CopyInput{
		FileSystem:  fs,
		Source:      "/src/a.txt",
		Destination: "/dst/sub/b.txt",
	})
	require.NoError(t, err)
	b, err = afero.ReadFile(fs, "/dst/sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = Copy(&CopyInput{
		FileSystem:  fs,
		Source:      "/src",
		Destination: "/dst/src",
	})
	assert.Error(t, err)

	_, err = Copy(&CopyInput{
		FileSystem:  fs,
		Source:      "/src/missing.txt",
		Destination: "/dst/missing.txt",
	})
	assert.Error(t, err)
}

func TestRemoveIfExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("a"), 0644))

	removed, err := RemoveIfExists(fs, "/a.txt")
	assert.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveIfExists(fs, "/a.txt")
	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestCopyReadOnlyDestination(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/src/a.txt", []byte("v2"), 0444))
	require.NoError(t, afero.WriteFile(base, "/dst/a.txt", []byte("v1"), 0444))
	fs := &modeFs{Fs: base}

	written, err := Copy(&CopyInput{
		FileSystem:  fs,
		Source:      "/src/a.txt",
		Destination: "/dst/a.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), written)

	b, err := afero.ReadFile(base, "/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))
}
