// Package render turns computed layouts into output artifacts.
//
// Three sinks are provided:
//   - SVG: scalable preview with one rectangle per photo
//   - HTML: standalone page with absolutely positioned items
//   - JSON: data interchange for external tools
//
// All sinks are pure: they read the layout, never mutate it, and are
// safe to call concurrently. Rendering needs no image bytes; photos
// with a URL are referenced, others are drawn as placeholders.
package render
