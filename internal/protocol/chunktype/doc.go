// Package chunktype owns the 4-byte chunk type code of the chunked container format.
//
// Ownership boundary:
// - construction and validation of the tag bytes
// - per-byte case flags (critical, public, reserved, safe-to-copy)
// - reading and writing the type field of a chunk header
//
// Chunk bodies, CRCs and whole-container encoding live elsewhere.
package chunktype
