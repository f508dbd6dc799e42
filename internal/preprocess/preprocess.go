package preprocess

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Params holds the tuning constants for the binarization pipeline.
//
// The values are fixed at construction time; there is no runtime
// reconfiguration. Use DefaultParams unless you have a reason not to.
type Params struct {
	// BilateralDiameter is the pixel neighborhood diameter of the
	// edge-preserving smoothing filter.
	BilateralDiameter int

	// BilateralSigma is used for both the color-space and coordinate-space
	// sigma of the bilateral filter.
	BilateralSigma float64

	// BlockSize is the side of the Gaussian-weighted neighborhood used to
	// compute the per-pixel threshold. Must be odd.
	BlockSize int

	// C is the constant subtracted from the weighted neighborhood mean.
	C float32
}

// DefaultParams returns the parameters the scanner was tuned with.
func DefaultParams() Params {
	return Params{
		BilateralDiameter: 9,
		BilateralSigma:    75,
		BlockSize:         21,
		C:                 10,
	}
}

// Binarize converts a 3-channel BGR frame into a single-channel binary mask
// with the same dimensions as the frame.
//
// Steps:
//
//  1. BGR -> grayscale
//  2. global histogram equalization, to normalize contrast under varying
//     illumination
//  3. bilateral filter, to suppress sensor noise while keeping marker edges
//     sharp (the contour stage depends on crisp boundaries)
//  4. Gaussian adaptive threshold producing a 0/255 mask
//
// The input frame is never mutated. The caller owns the returned mask and
// must Close it. An empty or non-3-channel frame is a precondition violation
// and returns an error.
func Binarize(frame gocv.Mat, p Params) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), errors.New("empty input frame")
	}
	if frame.Channels() != 3 {
		return gocv.NewMat(), errors.Errorf("expected 3-channel frame, got %d channels", frame.Channels())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	smoothed := gocv.NewMat()
	defer smoothed.Close()
	gocv.BilateralFilter(equalized, &smoothed, p.BilateralDiameter, p.BilateralSigma, p.BilateralSigma)

	mask := gocv.NewMat()
	gocv.AdaptiveThreshold(smoothed, &mask, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, p.BlockSize, p.C)
	return mask, nil
}
