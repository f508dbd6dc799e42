// Package finder locates finder-pattern candidates in a binary mask.
//
// A finder pattern is the nested-square alignment marker printed in the
// corners of a QR symbol. Its defining signature in contour space is a ring:
// a closed boundary that both sits inside another boundary and encloses at
// least one more. The detector extracts the full containment hierarchy of
// the mask and filters it down to at most a handful of axis-aligned, roughly
// square, ring-shaped regions.
//
// # Filtering
//
// A boundary curve survives only if all four of the following hold:
//
//   - it has a parent and at least one child in the hierarchy (the nested
//     ring structure is present)
//   - its bounding-box area is at least MinArea, rejecting sensor-noise
//     specks
//   - its bounding-box aspect ratio lies strictly inside
//     (AspectMin, AspectMax); finder patterns are square, not elongated
//   - the ratio of true contour area to bounding-box area lies strictly
//     inside (FillMin, FillMax), separating compact ring silhouettes from
//     irregular blobs that happen to be roughly square
//
// Candidates are returned in hierarchy traversal order, first found first
// kept, with no sorting by position or confidence.
//
// # Role in the pipeline
//
// Detection here is diagnostic only. Its output drives the debug overlay and
// never gates or feeds the authoritative decode step, so a false positive or
// negative affects the visualization but not correctness.
package finder
