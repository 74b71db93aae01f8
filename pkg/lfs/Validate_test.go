// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/src", 0755))
	require.NoError(t, afero.WriteFile(fs, "/data/file.txt", []byte("x"), 0644))

	p, err := Validate(&ValidateInput{FileSystem: fs, Name: "source", Path: "/data/src/"})
	assert.NoError(t, err)
	assert.Equal(t, "/data/src", p)

	p, err = Validate(&ValidateInput{FileSystem: fs, Name: "source", Path: "file:///data/src"})
	assert.NoError(t, err)
	assert.Equal(t, "/data/src", p)

	_, err = Validate(&ValidateInput{FileSystem: fs, Name: "source", Path: ""})
	assert.EqualError(t, err, "source path cannot be empty")

	_, err = Validate(&ValidateInput{FileSystem: fs, Name: "replica", Path: "/data/replica"})
	assert.EqualError(t, err, `replica directory "/data/replica" does not exist and parents is false`)

	_, err = Validate(&ValidateInput{FileSystem: fs, Name: "replica", Path: "/data/file.txt"})
	assert.EqualError(t, err, `replica path "/data/file.txt" is not a directory`)

	p, err = Validate(&ValidateInput{FileSystem: fs, Name: "replica", Path: "/data/replica/nested", Parents: true})
	assert.NoError(t, err)
	assert.Equal(t, "/data/replica/nested", p)
	exists, err := afero.DirExists(fs, "/data/replica/nested")
	assert.NoError(t, err)
	assert.True(t, exists)
}
