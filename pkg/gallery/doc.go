// Package gallery defines the photo collection input format and the
// serialized layout output format.
//
// A Gallery is the engine's input: an ordered list of photos with native
// pixel dimensions. A Layout is the engine's output: justified rows with
// exact per-item widths, offsets, and crop regions, ready for storage,
// API responses, and rendering.
//
// Both formats are JSON and designed for round-trip fidelity:
// import → compute → export → re-import produces identical results.
package gallery
