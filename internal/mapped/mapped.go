package mapped

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// File is a read-only view of a file's bytes. The view stays valid until
// Close.
type File struct {
	path        string
	data        []byte
	sourceSize  int64
	modTime     time.Time
	compression Compression
	release     func([]byte) error
}

// Open maps the file at path. Compressed archives are inflated to an
// unlinked temporary file first and that file is mapped instead. An empty
// file yields an empty view.
func Open(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	src, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory", path)
	}

	f := &File{
		path:       abs,
		sourceSize: info.Size(),
		modTime:    info.ModTime(),
	}

	var head [4]byte
	n, err := src.ReadAt(head[:], 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f.compression = Detect(head[:n])

	target, size := src, info.Size()
	if f.compression != CompressionNone {
		inflated, err := inflate(src, f.compression)
		if err != nil {
			return nil, fmt.Errorf("inflate %s (%s): %w", path, f.compression, err)
		}
		defer inflated.Close()
		st, err := inflated.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat inflated %s: %w", path, err)
		}
		target, size = inflated, st.Size()
	}

	if size == 0 {
		return f, nil
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("map %s: size %d exceeds address space", path, size)
	}
	data, release, err := mapFile(target, int(size))
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	f.data = data
	f.release = release
	return f, nil
}

// Path returns the absolute path the file was opened from.
func (f *File) Path() string { return f.path }

// Bytes returns the mapped contents. The slice must not be written to and
// must not be used after Close.
func (f *File) Bytes() []byte { return f.data }

// Len returns the number of mapped bytes. For archives this is the
// inflated size.
func (f *File) Len() int { return len(f.data) }

// SourceSize returns the size of the file on disk.
func (f *File) SourceSize() int64 { return f.sourceSize }

// ModTime returns the modification time of the file on disk.
func (f *File) ModTime() time.Time { return f.modTime }

// Compression reports how the file on disk was compressed.
func (f *File) Compression() Compression { return f.compression }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	data, release := f.data, f.release
	f.data, f.release = nil, nil
	if release == nil {
		return nil
	}
	if err := release(data); err != nil {
		return fmt.Errorf("unmap %s: %w", f.path, err)
	}
	return nil
}

// FaultError reports a memory fault raised while touching a mapping, as
// happens when the underlying file shrinks or the disk fails.
type FaultError struct {
	Addr  uintptr
	Cause any
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("fault reading mapped file at %#x: %v", e.Addr, e.Cause)
}

// Protect runs fn and converts a memory fault inside it into a
// *FaultError. Other panics propagate. The guard applies to the calling
// goroutine only.
func Protect(fn func() error) (err error) {
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			fault, ok := r.(interface{ Addr() uintptr })
			if !ok {
				panic(r)
			}
			err = &FaultError{Addr: fault.Addr(), Cause: r}
		}
	}()
	return fn()
}
