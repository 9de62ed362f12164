package updata

// BlockSize is the granularity of the per-block table that trails
// each record header: one 16-bit entry per BlockSize bytes of body.
const BlockSize = 4096

// blockEntryLength is the width of one block table entry.
const blockEntryLength = 2

// BlockCount returns the number of block table entries a body of
// bodySize bytes needs; a partial final block counts as a block.
func BlockCount(bodySize uint64) uint64 {
	n := bodySize / BlockSize
	if bodySize%BlockSize != 0 {
		n++
	}
	return n
}

// HeaderSizeFor computes the header length that must accompany a
// body of bodySize bytes.
func HeaderSizeFor(bodySize uint64) uint64 {
	return FixedHeaderLength + blockEntryLength*BlockCount(bodySize)
}

// validSizes reports whether the declared header and body sizes agree.
func validSizes(headerSize, bodySize uint64) bool {
	return headerSize == HeaderSizeFor(bodySize)
}
