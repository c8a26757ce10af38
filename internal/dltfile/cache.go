package dltfile

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/five82/dltview/internal/mapped"
)

const indexCacheVersion = 1

// indexCache is the on-disk form of a message index.
type indexCache struct {
	Version    int     `cbor:"1,keyasint"`
	Path       string  `cbor:"2,keyasint"`
	SourceSize int64   `cbor:"3,keyasint"`
	ModTime    int64   `cbor:"4,keyasint"`
	Length     int     `cbor:"5,keyasint"`
	Offsets    []int64 `cbor:"6,keyasint"`
}

var (
	cacheEncMode cbor.EncMode
	cacheDecMode cbor.DecMode
)

func init() {
	var err error
	cacheEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("dltfile: CBOR encoder initialization failed: " + err.Error())
	}
	// Offsets hold one element per message; the default array limit of
	// 131072 would reject large traces.
	cacheDecMode, err = cbor.DecOptions{MaxArrayElements: math.MaxInt32}.DecMode()
	if err != nil {
		panic("dltfile: CBOR decoder initialization failed: " + err.Error())
	}
}

// DefaultCacheDir returns the per-user directory index caches are kept in.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dltview", "index"), nil
}

// cachePath names the cache entry for a file by hashing its identity on
// disk. Any change of path, size or modification time selects a new entry.
func cachePath(dir string, m *mapped.File) string {
	buf := make([]byte, 0, len(m.Path())+16)
	buf = append(buf, m.Path()...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(m.SourceSize()))
	buf = binary.BigEndian.AppendUint64(buf, uint64(m.ModTime().UnixNano()))
	sum := blake3.Sum256(buf)
	return filepath.Join(dir, hex.EncodeToString(sum[:16])+".cbor")
}

// loadIndexCache returns cached offsets for m. ok is false when no usable
// entry exists; err is set only for entries that exist but cannot be read.
func loadIndexCache(dir string, m *mapped.File) (offsets []int64, ok bool, err error) {
	raw, err := os.ReadFile(cachePath(dir, m))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read index cache: %w", err)
	}

	var entry indexCache
	if err := cacheDecMode.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("decode index cache: %w", err)
	}
	if entry.Version != indexCacheVersion ||
		entry.Path != m.Path() ||
		entry.SourceSize != m.SourceSize() ||
		entry.ModTime != m.ModTime().UnixNano() ||
		entry.Length != m.Len() {
		return nil, false, nil
	}

	var valid bool
	if err := mapped.Protect(func() error {
		valid = validOffsets(m.Bytes(), entry.Offsets)
		return nil
	}); err != nil {
		return nil, false, err
	}
	if !valid {
		return nil, false, nil
	}
	return entry.Offsets, true, nil
}

// saveIndexCache writes the entry for m atomically.
func saveIndexCache(dir string, m *mapped.File, offsets []int64) error {
	raw, err := cacheEncMode.Marshal(indexCache{
		Version:    indexCacheVersion,
		Path:       m.Path(),
		SourceSize: m.SourceSize(),
		ModTime:    m.ModTime().UnixNano(),
		Length:     m.Len(),
		Offsets:    offsets,
	})
	if err != nil {
		return fmt.Errorf("encode index cache: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".index-*")
	if err != nil {
		return fmt.Errorf("create index cache: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write index cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close index cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachePath(dir, m)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("install index cache: %w", err)
	}
	return nil
}
