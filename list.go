package updata

import (
	"fmt"
	"io"
)

const (
	kiB = 1024
	miB = 1024 * kiB
	giB = 1024 * miB
)

// HumanSize renders a byte count in the largest unit below it, with
// the value truncated to an integer.
func HumanSize(n uint64) string {
	switch {
	case n < kiB:
		return fmt.Sprintf("%4d B", n)
	case n < miB:
		return fmt.Sprintf("%3d KB", n/kiB)
	case n < giB:
		return fmt.Sprintf("%3d MB", n/miB)
	default:
		return fmt.Sprintf("%3d GB", n/giB)
	}
}

// FormatRecord returns the listing line for the i'th record.
func FormatRecord(i int, r Record) string {
	return fmt.Sprintf("%02d: offset = %08x, hsize = %08x, bsize = %08x(%s), name = %s",
		i, r.Offset, r.HeaderSize, r.BodySize, HumanSize(r.BodySize), r.Name)
}

// List writes one line per record to w.
func List(w io.Writer, records []Record) error {
	for i, r := range records {
		if _, err := fmt.Fprintln(w, FormatRecord(i, r)); err != nil {
			return err
		}
	}
	return nil
}
