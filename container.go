package updata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// errDecompression marks a zstd frame that can't be decoded. Open
// then parses the bytes as they are.
var errDecompression = errors.New("updata: decompression failed")

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// maxDecompressedSize bounds the memory a compressed container may
// expand into.
var maxDecompressedSize uint64 = 4 << 30

// Container is a parsed UPDATE.APP held in memory, normally as a
// read-only mapping of the file.
type Container struct {
	Path    string
	Data    []byte
	Records []Record

	release func() error
}

// Open maps the container at path and parses it. Containers stored
// as a zstd frame are decompressed first; data that only happens to
// start with the zstd magic is parsed as it is. The mapping is held
// until Close; if Open fails, nothing is left mapped.
func Open(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("updata: %s is not a regular file", path)
	}

	data, release, err := mapFile(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("updata: mapping %s: %w", path, err)
	}

	c := &Container{Path: path, Data: data, release: release}
	if err = c.load(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

// Load parses a container that is already in memory. data must not
// be modified while the Container is in use.
func Load(data []byte) (*Container, error) {
	c := &Container{Data: data}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) load() error {
	if bytes.HasPrefix(c.Data, zstdMagic) {
		if data, err := decompress(c.Data); err == nil {
			if err = c.unmap(); err != nil {
				return err
			}
			c.Data = data
		}
	}

	records, err := Parse(c.Data)
	if err != nil {
		return err
	}
	c.Records = records
	return nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecompressedSize),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDecompression, err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDecompression, err)
	}
	return out, nil
}

func (c *Container) unmap() error {
	if c.release == nil {
		return nil
	}
	err := c.release()
	c.release = nil
	return err
}

// Close releases the container's mapping. The Data slice, and any
// slice taken from it, must not be used afterwards.
func (c *Container) Close() error {
	err := c.unmap()
	c.Data = nil
	c.Records = nil
	return err
}

// List writes the listing for every record to w.
func (c *Container) List(w io.Writer) error {
	return List(w, c.Records)
}

// Extract writes every record's header and body into dir.
func (c *Container) Extract(dir string) error {
	return Extract(c.Data, c.Records, dir)
}
