// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package hash

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Digest is a 128-bit content fingerprint used for change detection.
type Digest [md5.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// File streams the file at name through the hash function.
func File(fs afero.Fs, name string) (Digest, error) {
	f, err := fs.Open(name)
	if err != nil {
		return Digest{}, fmt.Errorf("error opening %q for hashing: %w", name, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, fmt.Errorf("error reading %q for hashing: %w", name, err)
	}

	d := Digest{}
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Equal hashes both files concurrently and reports whether their contents match.
func Equal(fs afero.Fs, a string, b string) (bool, error) {
	var digestA, digestB Digest

	var g errgroup.Group
	g.Go(func() error {
		d, err := File(fs, a)
		digestA = d
		return err
	})
	g.Go(func() error {
		d, err := File(fs, b)
		digestB = d
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	return digestA == digestB, nil
}
