// Package snapshot persists a Knit Graph (or a mapping network) as a
// compact binary record and reads it back.
//
// Layout:
//
//	"KNIT" | version uint16 | snappy block
//
// The snappy block holds, little-endian and fixed width: the course height,
// the graph name, the node records in (row, num) order and the edge records
// in first-insertion order. Decoding replays the records through the core
// API, so a decoded graph has the same views as the encoded one.
package snapshot
