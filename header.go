package updata

import (
	"encoding/binary"

	"github.com/opencontainers/go-digest"
)

// Header holds every field of a record header, including the ones
// that extraction has no use for.
type Header struct {
	Magic      [4]byte
	HeaderSize uint32
	Version    uint32
	HardwareID [8]byte
	Unknown1   uint32
	BodySize   uint32
	Date       string
	Time       string
	Name       string
	Reserved   [16]byte
	Unknown2   uint16
	Unknown3   uint32

	// BlockTable has one entry per BlockSize bytes of body.
	BlockTable []uint16
}

// DecodeHeader decodes the full header of a record found by Parse.
func DecodeHeader(data []byte, r Record) (*Header, error) {
	if !r.within(uint64(len(data))) || r.HeaderSize < FixedHeaderLength {
		return nil, recordError(r.Offset, ErrTruncatedRecord)
	}
	if !validSizes(r.HeaderSize, r.BodySize) {
		return nil, recordError(r.Offset, ErrSizeMismatch)
	}

	raw := r.Head(data)
	h := &Header{
		HeaderSize: binary.LittleEndian.Uint32(raw[offHeaderSize:]),
		Version:    binary.LittleEndian.Uint32(raw[offVersion:]),
		Unknown1:   binary.LittleEndian.Uint32(raw[offUnknown1:]),
		BodySize:   binary.LittleEndian.Uint32(raw[offBodySize:]),
		Date:       decodeText(raw[offDate : offDate+textFieldLength]),
		Time:       decodeText(raw[offTime : offTime+textFieldLength]),
		Name:       decodeText(raw[offName : offName+textFieldLength]),
		Unknown2:   binary.LittleEndian.Uint16(raw[offUnknown2:]),
		Unknown3:   binary.LittleEndian.Uint32(raw[offUnknown3:]),
	}
	copy(h.Magic[:], raw[:len(Magic)])
	copy(h.HardwareID[:], raw[offHardwareID:offUnknown1])
	copy(h.Reserved[:], raw[offReserved:offUnknown2])

	table := raw[FixedHeaderLength:]
	h.BlockTable = make([]uint16, len(table)/blockEntryLength)
	for i := range h.BlockTable {
		h.BlockTable[i] = binary.LittleEndian.Uint16(table[i*blockEntryLength:])
	}

	return h, nil
}

// HardwareString returns the hardware ID as text.
func (h *Header) HardwareString() string {
	return decodeText(h.HardwareID[:])
}

// Digest returns the SHA-256 digest of the record's body.
func (r Record) Digest(data []byte) digest.Digest {
	return digest.FromBytes(r.Body(data))
}
