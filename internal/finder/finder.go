package finder

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Candidate is an axis-aligned region that plausibly contains a finder
// pattern, in frame coordinates. The aspect and fill ratios used during
// filtering are not retained.
type Candidate struct {
	Rect image.Rectangle
}

// Params holds the candidate filter thresholds. The values are fixed at
// construction and not externally configurable.
type Params struct {
	// MinArea is the minimum bounding-box area in square pixels.
	MinArea float64

	// AspectMin and AspectMax bound the bounding-box width/height ratio,
	// both exclusive.
	AspectMin float64
	AspectMax float64

	// FillMin and FillMax bound the contour-area to bounding-box-area
	// ratio, both exclusive.
	FillMin float64
	FillMax float64

	// MaxCandidates caps the number of returned candidates.
	MaxCandidates int
}

// DefaultParams returns the thresholds the detector was tuned with.
func DefaultParams() Params {
	return Params{
		MinArea:       100,
		AspectMin:     0.8,
		AspectMax:     1.2,
		FillMin:       0.7,
		FillMax:       0.9,
		MaxCandidates: 3,
	}
}

// Hierarchy node layout used by OpenCV: [next, previous, first child, parent].
const (
	hierarchyChild  = 2
	hierarchyParent = 3
)

// Detect extracts the contour hierarchy of a binary mask and filters it into
// at most p.MaxCandidates finder-pattern candidates.
//
// The mask is first morphologically closed with a 3x3 structuring element to
// bridge small gaps inside marker interiors; a fragmented marker would
// otherwise split into several contours and lose its nested structure. The
// input mask itself is not modified.
//
// An empty candidate slice is a normal outcome, not an error. Only an empty
// mask is rejected.
func Detect(mask gocv.Mat, p Params) ([]Candidate, error) {
	if mask.Empty() {
		return nil, errors.New("empty input mask")
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(mask, &closed, gocv.MorphClose, kernel)

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	contours := gocv.FindContoursWithParams(closed, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	candidates := make([]Candidate, 0, p.MaxCandidates)
	for i := 0; i < contours.Size(); i++ {
		if len(candidates) >= p.MaxCandidates {
			break
		}

		node := hierarchy.GetVeciAt(0, i)
		if node[hierarchyParent] < 0 || node[hierarchyChild] < 0 {
			continue
		}

		contour := contours.At(i)
		rect := gocv.BoundingRect(contour)
		width := float64(rect.Dx())
		height := float64(rect.Dy())
		boxArea := width * height
		if boxArea < p.MinArea {
			continue
		}

		aspect := width / height
		if aspect <= p.AspectMin || aspect >= p.AspectMax {
			continue
		}

		fill := gocv.ContourArea(contour) / boxArea
		if fill <= p.FillMin || fill >= p.FillMax {
			continue
		}

		candidates = append(candidates, Candidate{Rect: rect})
	}
	return candidates, nil
}
