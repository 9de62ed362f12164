package updata

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extensions used for the two files written per record.
const (
	HeadExt = ".head"
	BodyExt = ".img"
)

// ExtractRecord writes the header and body of a single record into
// dir, replacing any files already there.
func ExtractRecord(data []byte, r Record, dir string) error {
	if !r.within(uint64(len(data))) {
		return recordError(r.Offset, ErrTruncatedRecord)
	}

	name := r.FileName()
	if err := os.WriteFile(filepath.Join(dir, name+HeadExt), r.Head(data), 0644); err != nil {
		return fmt.Errorf("updata: writing header of %q: %w", r.Name, err)
	}

	if err := os.WriteFile(filepath.Join(dir, name+BodyExt), r.Body(data), 0644); err != nil {
		return fmt.Errorf("updata: writing image %q: %w", r.Name, err)
	}

	return nil
}

// Extract writes every record into dir, creating dir first if it
// doesn't exist.
func Extract(data []byte, records []Record, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("updata: creating output directory: %w", err)
	}

	for _, r := range records {
		if err := ExtractRecord(data, r, dir); err != nil {
			return err
		}
	}

	return nil
}
