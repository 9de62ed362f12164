package updata

import "testing"

func TestBlockCount(t *testing.T) {
	var counts = map[uint64]uint64{
		0:                 0,
		1:                 1,
		BlockSize - 1:     1,
		BlockSize:         1,
		BlockSize + 1:     2,
		10 * BlockSize:    10,
		10*BlockSize + 17: 11,
		0xFFFFFFFF:        0x100000,
	}

	for size, want := range counts {
		if got := BlockCount(size); got != want {
			t.Fatalf("updata: BlockCount(%d) = %d, want %d", size, got, want)
		}

		header := HeaderSizeFor(size)
		if header != FixedHeaderLength+2*want {
			t.Fatalf("updata: HeaderSizeFor(%d) = %d", size, header)
		}

		if !validSizes(header, size) {
			t.Fatalf("updata: %d/%d should be consistent", header, size)
		}
		if validSizes(header+1, size) || validSizes(header-2, size) {
			t.Fatalf("updata: off-by-one header accepted for body size %d", size)
		}
	}
}
