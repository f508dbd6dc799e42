// Package preprocess turns raw color frames into binary masks suitable for
// contour-based analysis.
//
// The pipeline is a fixed sequence of pure, stateless transforms: grayscale
// conversion, global histogram equalization, edge-preserving bilateral
// smoothing, and Gaussian adaptive thresholding. Adaptive (rather than
// global) thresholding is used because illumination is not assumed to be
// uniform across the frame.
//
// All functions leave their input Mat untouched and return a newly allocated
// mask that the caller owns and must Close.
package preprocess
