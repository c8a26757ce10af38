// Package mapped provides read-only memory-mapped views of log files.
//
// Open maps a file with PROT_READ/MAP_SHARED on Linux and macOS and falls
// back to reading it into memory elsewhere. Files wrapped in gzip, zstd or
// LZ4 frames are detected by their magic bytes and inflated to an unlinked
// temporary file, which is then mapped like any other file.
//
// A mapping can fault if the file is truncated underneath it. Readers that
// walk the mapping should do so inside Protect, which turns the fault into
// an error for the calling goroutine.
package mapped
