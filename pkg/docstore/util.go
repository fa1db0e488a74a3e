package docstore

// Local filesystem helpers shared by the samples

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteStream copies src into the regular file at dst, creating it (and its
// parent directory) or truncating an existing one. Returns bytes written.
func WriteStream(src io.Reader, dst string) (int64, error) {
	if dstStat, err := os.Stat(dst); err == nil && !dstStat.Mode().IsRegular() {
		return 0, errors.Errorf("%s is not a regular file", dst)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0775); err != nil {
		return 0, errors.Wrap(err, "Failed to create directory for "+dst)
	}

	to, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(to, src)
	if err != nil {
		to.Close()
		return n, err
	}
	return n, to.Close()
}
