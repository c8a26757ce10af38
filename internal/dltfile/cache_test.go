package dltfile

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/dltview/internal/dlt/dlttest"
	"github.com/five82/dltview/internal/mapped"
)

func TestIndexCache_WriteThenHit(t *testing.T) {
	first, second := fixtureF1()
	path := dlttest.WriteFile(t, dlttest.Concat([]byte{0xff}, first, second))
	dir := t.TempDir()

	f, err := Open(path, Options{IndexCache: true, CacheDir: dir})
	require.NoError(t, err)
	assert.False(t, f.IndexCached())
	want := f.Offsets()
	require.NoError(t, f.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, err = Open(path, Options{IndexCache: true, CacheDir: dir})
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, f.IndexCached())
	assert.Equal(t, want, f.Offsets())
}

func TestIndexCache_DisabledWritesNothing(t *testing.T) {
	first, second := fixtureF1()
	dir := t.TempDir()

	f, err := Open(dlttest.WriteFile(t, dlttest.Concat(first, second)), Options{CacheDir: dir})
	require.NoError(t, err)
	defer f.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIndexCache_StaleOffsetsRebuilt(t *testing.T) {
	first, second := fixtureF1()
	path := dlttest.WriteFile(t, dlttest.Concat(first, second))
	dir := t.TempDir()

	m, err := mapped.Open(path)
	require.NoError(t, err)
	require.NoError(t, saveIndexCache(dir, m, []int64{0, 5}))
	require.NoError(t, m.Close())

	f, err := Open(path, Options{IndexCache: true, CacheDir: dir})
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, f.IndexCached())
	assert.Equal(t, []int64{0, int64(len(first))}, f.Offsets())
}

func TestIndexCache_CorruptEntryRebuilt(t *testing.T) {
	first, second := fixtureF1()
	path := dlttest.WriteFile(t, dlttest.Concat(first, second))
	dir := t.TempDir()

	m, err := mapped.Open(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cachePath(dir, m), []byte{0xff, 0x00, 0x13}, 0o644))
	require.NoError(t, m.Close())

	f, err := Open(path, Options{IndexCache: true, CacheDir: dir})
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, f.IndexCached())
	assert.Equal(t, 2, f.Count())
}

func TestLoadIndexCache_Miss(t *testing.T) {
	first, _ := fixtureF1()
	m, err := mapped.Open(dlttest.WriteFile(t, first))
	require.NoError(t, err)
	defer m.Close()

	offsets, ok, err := loadIndexCache(t.TempDir(), m)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, offsets)
}

func TestIndexCache_HitsBeyondDefaultArrayLimit(t *testing.T) {
	const count = 140_000
	rec := dlttest.Record{Seconds: 1, ECU: "ECU1", NoExtended: true}.Bytes()
	path := dlttest.WriteFile(t, bytes.Repeat(rec, count))
	dir := t.TempDir()

	f, err := Open(path, Options{IndexCache: true, CacheDir: dir})
	require.NoError(t, err)
	require.Equal(t, count, f.Count())
	require.NoError(t, f.Close())

	m, err := mapped.Open(path)
	require.NoError(t, err)
	offsets, ok, err := loadIndexCache(dir, m)
	require.NoError(t, m.Close())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, offsets, count)

	f, err = Open(path, Options{IndexCache: true, CacheDir: dir})
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, f.IndexCached())
	assert.Equal(t, count, f.Count())
}
