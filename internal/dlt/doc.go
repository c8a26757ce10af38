// Package dlt decodes Diagnostic Log and Trace records.
//
// # Overview
//
// A DLT file is an append-only stream of variable-length records. Each record
// is a 16-byte storage header, a 4-byte standard header, an optional 10-byte
// extended header and a payload:
//
//	 0      4        8        12     16   17   18     20          30
//	┌──────┬────────┬────────┬──────┬────┬────┬──────┬───────────┬─────────┐
//	│ DLT1 │ secs   │ usecs  │ ECU  │ HT │ MC │ LEN  │ extended  │ payload │
//	│      │ u32 BE │ u32 BE │      │    │    │u16 LE│ (if HT&1) │         │
//	└──────┴────────┴────────┴──────┴────┴────┴──────┴───────────┴─────────┘
//
// Note the mixed endianness: the storage timestamp is big-endian while the
// standard header length is little-endian. LEN counts every byte of the record
// starting at the storage pattern, so the next record begins at offset+LEN.
//
// # Parsing
//
// Parse copies the payload so the message outlives the input slice. ParseView
// aliases the input and is meant for hot loops over a memory-mapped file where
// the mapping is known to outlive the message.
//
// A zero length field is treated as "unknown": the payload runs to the end of
// the supplied slice. Any other inconsistency (short headers, missing storage
// pattern, a length that disagrees with the slice) yields a *FormatError.
//
// # Text projection
//
// Payloads consisting solely of printable ASCII plus tab, newline and carriage
// return are exposed as text. Everything else renders through HexDump. The
// verbose argument encoding is not decoded.
package dlt
