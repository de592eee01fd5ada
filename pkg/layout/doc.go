// Package layout implements the justified photo-row layout engine.
//
// Given an ordered sequence of items with known aspect ratios and a
// container width, the engine partitions the sequence into rows that,
// when each row's items are scaled to a common height, exactly fill the
// container width. Row breaks are chosen by a bounded lookahead search
// that scores candidate continuations against a target band for the
// row's aggregate aspect ratio (the sum of its items' aspect ratios).
//
// # Pipeline
//
// The engine is three pure steps:
//
//  1. Partition: choose row boundaries via lookahead scoring.
//  2. Measure: convert each row into exact pixel geometry (a shared
//     row height plus per-item widths and left offsets that sum to the
//     container width with no rounding gaps or overlaps).
//  3. Crop: derive the source-pixel center-crop rectangle for items
//     whose row aggregate falls outside the target band.
//
// All three are deterministic functions of their inputs; the optional
// RandomSelector trades that determinism for visual variety when
// several candidate continuations tie on score.
//
// # Usage
//
//	items := []layout.Item{{ID: "a", AspectRatio: 1.5}, {ID: "b", AspectRatio: 0.7}}
//	result, err := layout.Compute(items, 960, layout.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range result.Rows {
//	    fmt.Println(row.Geometry.Height, len(row.Items))
//	}
package layout
