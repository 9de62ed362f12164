package updata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRoundTrip(t *testing.T) {
	data := sampleContainer()
	records, err := Parse(data)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "output")
	require.NoError(t, Extract(data, records, dir))

	for _, r := range records {
		head, err := os.ReadFile(filepath.Join(dir, r.FileName()+HeadExt))
		require.NoError(t, err)
		body, err := os.ReadFile(filepath.Join(dir, r.FileName()+BodyExt))
		require.NoError(t, err)

		assert.Equal(t, data[r.Offset:r.End()], append(head, body...), r.Name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2*len(records))
}

func TestExtractEmptyBody(t *testing.T) {
	data := buildRecord(testRecord{})
	records, err := Parse(data)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Extract(data, records, dir))

	head, err := os.Stat(filepath.Join(dir, ".head"))
	require.NoError(t, err)
	assert.Equal(t, int64(FixedHeaderLength), head.Size())

	body, err := os.Stat(filepath.Join(dir, ".img"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), body.Size())
}

func TestExtractOverwrites(t *testing.T) {
	data := buildContainer(testRecord{name: "BOOT", body: []byte("new")})
	records, err := Parse(data)
	require.NoError(t, err)

	dir := t.TempDir()
	stale := filepath.Join(dir, "boot.img")
	require.NoError(t, os.WriteFile(stale, []byte("a much longer stale image"), 0644))

	require.NoError(t, Extract(data, records, dir))

	got, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestExtractExistingDirectory(t *testing.T) {
	data := sampleContainer()
	records, err := Parse(data)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Extract(data, records, dir))
	require.NoError(t, Extract(data, records, dir))
}

func TestExtractDirectoryIsFile(t *testing.T) {
	data := sampleContainer()
	records, err := Parse(data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	require.Error(t, Extract(data, records, path))
}

func TestExtractRejectsOutOfRangeRecord(t *testing.T) {
	data := sampleContainer()
	bogus := Record{Name: "BOGUS", Offset: uint64(len(data)) - 10, HeaderSize: 98}

	dir := t.TempDir()
	err := Extract(data, []Record{bogus}, dir)
	require.ErrorIs(t, err, ErrTruncatedRecord)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtractNameWithNUL(t *testing.T) {
	data := buildContainer(testRecord{name: "A\x00B", body: []byte("ab")})
	records, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, "A\x00B", records[0].Name)

	dir := t.TempDir()
	require.NoError(t, Extract(data, records, dir))

	got, err := os.ReadFile(filepath.Join(dir, "a_b.img"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), got)
}
