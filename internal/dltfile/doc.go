// Package dltfile opens DLT log files and indexes the records inside them.
//
// # Index
//
// ScanOffsets walks the mapped bytes once, recording every position where
// the storage magic appears and jumping ahead by the record's length field
// when that field is usable. When it is not (zero, or pointing past the end
// of the file) the scan advances a single byte, so garbage between records
// and records with damaged lengths are stepped over rather than trusted.
// Nothing is parsed during the scan.
//
// # Access
//
// A record spans from its offset to the next offset, or to the end of the
// file for the last record. Message copies the payload out of the mapping;
// View aliases it for callers that only inspect a message briefly, such as
// the filter and search workers.
//
// # Index cache
//
// With Options.IndexCache set, the offsets are stored as CBOR under the
// user cache directory, keyed by a BLAKE3 hash of the file's path, size and
// modification time. A cached index is only used when it still matches the
// file and every offset still lands on a storage magic.
package dltfile
