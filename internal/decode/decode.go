package decode

import (
	"image"

	"gocv.io/x/gocv"
)

// Result is the outcome of one detect-and-decode attempt.
//
// Text is empty when no symbol was decoded. Points holds the symbol's
// quadrilateral corners in frame coordinates, ordered top-left, top-right,
// bottom-right, bottom-left, and is nil when no symbol was located. A result
// with Points but no Text means a symbol was geometrically found but could
// not be decoded (for example, damaged beyond error-correction capacity);
// downstream code does not distinguish that case from "no symbol present".
type Result struct {
	Text   string
	Points []image.Point
}

// Located reports whether the engine found a symbol quadrilateral.
func (r Result) Located() bool {
	return len(r.Points) == 4
}

// QuadDecoder detects and decodes a matrix barcode in a raw frame.
//
// Implementations must treat the frame as read-only. "Nothing found" is a
// zero Result with a nil error; errors are reserved for precondition
// violations and engine failures.
type QuadDecoder interface {
	DetectAndDecode(frame gocv.Mat) (Result, error)

	// Close releases any resources held by the engine.
	Close() error
}
