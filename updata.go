// Package updata reads the UPDATE.APP container used to ship Huawei
// firmware updates. The container is a run of image records placed
// back to back; each one starts with a magic marker, carries a fixed
// header followed by a per-block table, and ends with the image body.
// There is no table of contents, so records are found by scanning for
// the marker and then trusting the sizes in each header to find the
// next one.
package updata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FixedHeaderLength is the length of the header fields that precede
// the per-block table.
const FixedHeaderLength = 98

// Field offsets relative to the start of a record.
const (
	offHeaderSize = 4
	offVersion    = 8
	offHardwareID = 12
	offUnknown1   = 20
	offBodySize   = 24
	offDate       = 28
	offTime       = 44
	offName       = 60
	offReserved   = 76
	offUnknown2   = 92
	offUnknown3   = 94

	textFieldLength = 16
)

// Magic marks the start of every record.
var Magic = []byte{0x55, 0xAA, 0x5A, 0xA5}

var (
	ErrSizeMismatch    = errors.New("updata: header size does not match body size")
	ErrTruncatedRecord = errors.New("updata: record extends past end of container")
)

// RecordError ties a parse failure to the offset of the record that
// caused it.
type RecordError struct {
	Offset uint64
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s (record at offset %#08x)", e.Err, e.Offset)
}

func (e *RecordError) Unwrap() error { return e.Err }

func recordError(offset uint64, err error) error {
	return &RecordError{Offset: offset, Err: err}
}

// Record describes one image in the container.
type Record struct {
	// Name is the image name with its NUL padding removed.
	Name string

	// Offset is the position of the record's magic marker.
	Offset uint64

	// HeaderSize covers everything from the magic marker through
	// the end of the block table.
	HeaderSize uint64

	// BodySize is the length of the image that follows the header.
	BodySize uint64
}

// End returns the offset just past the record's body, which is where
// the next record should start.
func (r Record) End() uint64 {
	return r.Offset + r.HeaderSize + r.BodySize
}

// Head returns the record's header bytes. The caller must have
// checked the record against data, which Parse does.
func (r Record) Head(data []byte) []byte {
	return data[r.Offset : r.Offset+r.HeaderSize]
}

// Body returns the record's image bytes.
func (r Record) Body(data []byte) []byte {
	start := r.Offset + r.HeaderSize
	return data[start : start+r.BodySize]
}

// within reports whether the record lies entirely inside a container
// of the given length.
func (r Record) within(length uint64) bool {
	end := r.Offset + r.HeaderSize
	if end < r.Offset {
		return false
	}
	if end+r.BodySize < end {
		return false
	}
	return end+r.BodySize <= length
}

// FileName is the base name used when extracting the record: the
// image name in lower case, with path separators and NULs replaced
// so the result is a valid name inside the output directory.
func (r Record) FileName() string {
	name := strings.ToLower(r.Name)
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "_").Replace(name)
}

// decodeText trims the trailing NUL padding from a fixed-width text
// field. Bytes outside ASCII are shown as the replacement character.
func decodeText(field []byte) string {
	field = bytes.TrimRight(field, "\x00")

	var sb strings.Builder
	sb.Grow(len(field))
	for _, c := range field {
		if c < utf8.RuneSelf {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(utf8.RuneError)
		}
	}
	return sb.String()
}

func readRecord(data []byte, offset uint64) (Record, error) {
	length := uint64(len(data))
	if length-offset < FixedHeaderLength {
		return Record{}, recordError(offset, ErrTruncatedRecord)
	}

	hdr := data[offset : offset+FixedHeaderLength]
	rec := Record{
		Name:       decodeText(hdr[offName : offName+textFieldLength]),
		Offset:     offset,
		HeaderSize: uint64(binary.LittleEndian.Uint32(hdr[offHeaderSize:])),
		BodySize:   uint64(binary.LittleEndian.Uint32(hdr[offBodySize:])),
	}

	if !validSizes(rec.HeaderSize, rec.BodySize) {
		return Record{}, recordError(offset, ErrSizeMismatch)
	}

	if !rec.within(length) {
		return Record{}, recordError(offset, ErrTruncatedRecord)
	}

	return rec, nil
}

// Parse walks the container and returns its records in order. The
// data is only read. A record whose sizes disagree, or which runs off
// the end of data, stops the parse; no records are returned in that
// case. A container with no magic marker at all holds no records.
func Parse(data []byte) ([]Record, error) {
	var records []Record
	var cursor uint64
	length := uint64(len(data))

	for cursor < length {
		idx := bytes.Index(data[cursor:], Magic)
		if idx < 0 {
			break
		}

		rec, err := readRecord(data, cursor+uint64(idx))
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
		cursor = rec.End()
	}

	return records, nil
}
