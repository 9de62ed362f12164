//go:build !unix

package updata

import (
	"fmt"
	"io"
	"math"
	"os"
)

// mapFile reads the whole file; there is no mapping to release.
func mapFile(f *os.File, size int64) ([]byte, func() error, error) {
	if size > math.MaxInt {
		return nil, nil, fmt.Errorf("file too large to load (%d bytes)", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
