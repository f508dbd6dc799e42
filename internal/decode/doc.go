// Package decode defines the boundary to the external QR decoding engine.
//
// The scanner treats decoding as an opaque capability behind the QuadDecoder
// interface: the engine performs its own localization of the symbol's
// four-corner quadrilateral and its own error-corrected bit decode, and is
// authoritative for the returned text. Two backends are provided: one over
// OpenCV's built-in QR detector and a pure-Go one over a ZXing port.
package decode
