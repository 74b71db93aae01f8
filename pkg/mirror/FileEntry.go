// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

// FileEntry is a file found under a tree root.
// RelativePath is the join key between the source and the replica.
type FileEntry struct {
	RelativePath string
	AbsolutePath string
}
